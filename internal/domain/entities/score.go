package entities

// HasilQuiz is one murid's recorded quiz result as seen by a guru.
type HasilQuiz struct {
	ID        int64   `json:"id"`
	MuridNama string  `json:"murid_nama"`
	Kelas     string  `json:"kelas"`
	NamaMapel string  `json:"nama_mapel"`
	Score     float64 `json:"score"`
	Benar     int     `json:"jawaban_benar"`
	TotalSoal int     `json:"total_soal"`
	CreatedAt string  `json:"created_at"`
}

// StatistikNilai aggregates quiz results per subject.
type StatistikNilai struct {
	NamaMapel  string  `json:"nama_mapel"`
	JumlahQuiz int     `json:"jumlah_quiz"`
	RataRata   float64 `json:"rata_rata"`
	NilaiMin   float64 `json:"nilai_min"`
	NilaiMax   float64 `json:"nilai_max"`
}
