package entities

// PendingMurid is a registered murid account awaiting guru verification.
type PendingMurid struct {
	ID        int64  `json:"id"`
	Nama      string `json:"nama"`
	Email     string `json:"email"`
	Kelas     string `json:"kelas"`
	CreatedAt string `json:"created_at"`
}

// MuridDetail is a verified murid as listed in the guru roster, including
// the preferences the murid has filled in (nil when not set).
type MuridDetail struct {
	ID              int64   `json:"id"`
	Nama            string  `json:"nama"`
	Email           string  `json:"email"`
	Kelas           string  `json:"kelas"`
	FavoriteSubject *string `json:"mata_pelajaran_favorit"`
	GayaBelajar     *string `json:"gaya_belajar"`
	MinatBidang     *string `json:"minat_bidang"`
}
