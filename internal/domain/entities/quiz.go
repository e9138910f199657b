package entities

// ChoiceLetters are the four answer slots of a multiple choice question,
// in display order.
var ChoiceLetters = []string{"A", "B", "C", "D"}

// Question represents a single multiple choice soal. The backend omits
// JawabanBenar when delivering questions for an open attempt; grading is
// server-side and the field is irrelevant to this client either way.
type Question struct {
	ID           int64  `json:"id"`
	Pertanyaan   string `json:"pertanyaan"`
	PilihanA     string `json:"pilihan_a"`
	PilihanB     string `json:"pilihan_b"`
	PilihanC     string `json:"pilihan_c"`
	PilihanD     string `json:"pilihan_d"`
	JawabanBenar string `json:"jawaban_benar,omitempty"`
}

// Choice returns the option text for a choice letter, or "" for an
// unknown letter.
func (q Question) Choice(letter string) string {
	switch letter {
	case "A":
		return q.PilihanA
	case "B":
		return q.PilihanB
	case "C":
		return q.PilihanC
	case "D":
		return q.PilihanD
	}
	return ""
}

// Quiz represents a quiz as listed for a subject. Score, JawabanBenar and
// TotalSoal are nil until the murid has a recorded result.
type Quiz struct {
	ID        int64      `json:"id"`
	Judul     string     `json:"judul"`
	SubjectID int64      `json:"mata_pelajaran_id"`
	NamaMapel string     `json:"nama_mapel"`
	CreatedAt string     `json:"created_at"`
	Soal      []Question `json:"soal,omitempty"`
	Score     *float64   `json:"score"`
	Benar     *int       `json:"jawaban_benar"`
	TotalSoal *int       `json:"total_soal"`
}

// Taken reports whether the quiz already has a recorded result for the
// current murid.
func (q Quiz) Taken() bool { return q.Score != nil }

// NewQuizRequest is the payload for POST /api/guru/quiz.
type NewQuizRequest struct {
	Judul     string     `json:"judul"`
	SubjectID int64      `json:"mata_pelajaran_id"`
	Soal      []Question `json:"soal"`
}

// QuizResult is the recorded outcome of one attempt. The presence of a
// numeric Score is the sole discriminator between a closed and an open
// attempt when probing prior state.
type QuizResult struct {
	Message     string   `json:"message"`
	Score       *float64 `json:"score,omitempty"`
	Benar       *int     `json:"jawaban_benar,omitempty"`
	TotalSoal   *int     `json:"total_soal,omitempty"`
	SubmittedAt string   `json:"submitted_at,omitempty"`
}

// Recorded reports whether the result carries a numeric score, i.e. the
// attempt is closed.
func (r *QuizResult) Recorded() bool { return r != nil && r.Score != nil }
