package entities

// Subject represents a mata pelajaran managed by a guru.
type Subject struct {
	ID               int64  `json:"id"`
	NamaMapel        string `json:"nama_mapel"`
	Deskripsi        string `json:"deskripsi"`
	TingkatKesulitan string `json:"tingkat_kesulitan"`
	GuruID           int64  `json:"guru_id"`
	GuruNama         string `json:"guru_nama"`
	CreatedAt        string `json:"created_at"`
}

// NewSubjectRequest is the payload for POST /api/guru/mata-pelajaran.
type NewSubjectRequest struct {
	NamaMapel        string `json:"nama_mapel"`
	Deskripsi        string `json:"deskripsi"`
	TingkatKesulitan string `json:"tingkat_kesulitan"`
}

// Material is a study material (pembahasan) attached to a subject.
type Material struct {
	ID        int64  `json:"id"`
	Judul     string `json:"judul"`
	Konten    string `json:"konten"`
	SubjectID int64  `json:"mata_pelajaran_id"`
	NamaMapel string `json:"nama_mapel"`
	CreatedAt string `json:"created_at"`
}

// NewMaterialRequest is the payload for POST /api/guru/materi.
type NewMaterialRequest struct {
	Judul     string `json:"judul"`
	Konten    string `json:"konten"`
	SubjectID int64  `json:"mata_pelajaran_id"`
}
