package entities

// Learning styles a murid can pick in the preferences view.
const (
	StyleVisual     = "Visual"
	StyleAudio      = "Audio"
	StyleKinestetik = "Kinestetik"
)

// Preferences holds a murid's stated learning preferences. They feed the
// server-side recommendation ranking; the client only reads and writes them.
type Preferences struct {
	ID              int64  `json:"id,omitempty"`
	MuridID         int64  `json:"murid_id,omitempty"`
	FavoriteSubject string `json:"mata_pelajaran_favorit"`
	GayaBelajar     string `json:"gaya_belajar"`
	MinatBidang     string `json:"minat_bidang"`
}
