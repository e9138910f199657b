// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/belajarku/belajarku-bot/internal/domain/entities"
	"github.com/belajarku/belajarku-bot/internal/service"
)

// Error and prompt messages.
const (
	msgInternalError      = "Terjadi kesalahan. Silakan coba lagi nanti."
	msgPleaseLogin        = "Anda belum masuk. Gunakan /masuk untuk masuk atau /daftar untuk membuat akun murid."
	msgAlreadyLoggedIn    = "Anda sudah masuk. Gunakan /keluar terlebih dahulu untuk berganti akun."
	msgWrongRole          = "Halaman itu bukan untuk peran akun Anda."
	msgLoggedOut          = "Anda telah keluar. Sampai jumpa!"
	msgAskEmail           = "Masukkan alamat email Anda:"
	msgAskPassword        = "Masukkan kata sandi Anda:"
	msgAskNama            = "Masukkan nama lengkap Anda:"
	msgAskKelas           = "Masukkan kelas Anda (contoh: 10A):"
	msgAskRole            = "Saya adalah seorang..."
	msgRegistered         = "Pendaftaran berhasil! Silakan tunggu verifikasi dari guru sebelum masuk."
	msgNoSubjects         = "Tidak ada mata pelajaran yang tersedia saat ini."
	msgNoMaterials        = "Belum ada materi."
	msgNoQuizzes          = "Belum ada kuis."
	msgNoQuestions        = "Kuis ini tidak memiliki pertanyaan."
	msgQuizIncomplete     = "Jawab semua pertanyaan terlebih dahulu sebelum mengirim."
	msgQuizNotActive      = "Tidak ada kuis yang sedang berjalan. Buka kuis dari halaman mata pelajaran."
	msgSubjectNotFound    = "Mata pelajaran tidak ditemukan."
	msgNoPendingMurid     = "Tidak ada murid yang tertunda."
	msgMuridVerified      = "Murid berhasil diverifikasi."
	msgNoMurid            = "Anda belum memverifikasi murid manapun."
	msgNoScores           = "Belum ada nilai yang tercatat."
	msgPrefsSaved         = "Preferensi berhasil disimpan!"
	msgPrefsUnavailable   = "Tidak dapat memuat data Anda. Silakan coba lagi nanti."
	msgAskMinat           = "Masukkan bidang minat Anda (cth., teknologi, seni, sains, sejarah):"
	msgAskNamaMapel       = "Masukkan nama mata pelajaran:"
	msgAskDeskripsi       = "Masukkan deskripsi singkat:"
	msgAskTingkat         = "Pilih tingkat kesulitan:"
	msgSubjectCreated     = "Mata pelajaran berhasil dibuat."
	msgSubjectDeleted     = "Mata pelajaran berhasil dihapus."
	msgAskJudulMateri     = "Masukkan judul materi:"
	msgAskKonten          = "Masukkan isi materi:"
	msgAskMapelForMateri  = "Pilih mata pelajaran untuk materi ini:"
	msgMaterialCreated    = "Materi berhasil dibuat."
	msgAskJudulQuiz       = "Masukkan judul kuis:"
	msgAskMapelForQuiz    = "Pilih mata pelajaran untuk kuis ini:"
	msgAskPertanyaan      = "Masukkan teks pertanyaan:"
	msgAskJawabanBenar    = "Pilih jawaban yang benar:"
	msgQuizCreated        = "Kuis berhasil disimpan."
	msgQuizNeedsSoal      = "Tambahkan minimal satu pertanyaan sebelum menyimpan kuis."
	msgRecommendationGone = "Selesaikan kuis dan atur preferensi belajar Anda untuk mendapatkan rekomendasi yang dipersonalisasi."
	msgUnknownCommand     = "Perintah tidak dikenal. Gunakan /help untuk melihat daftar perintah."
	msgHelp               = "Perintah yang tersedia:\n\n" +
		"/dasbor — buka dasbor sesuai peran Anda\n" +
		"/masuk — masuk ke akun Anda\n" +
		"/daftar — buat akun murid baru\n" +
		"/preferensi — atur preferensi belajar (murid)\n" +
		"/nilai — lihat nilai murid (guru)\n" +
		"/keluar — keluar dari akun\n" +
		"/help — bantuan"
)

// Difficulty levels offered when a guru creates a subject.
var difficultyLevels = []string{"Pemula", "Menengah", "Lanjutan"}

// md escapes plain text for MarkdownV2.
func md(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s)
}

func bold(s string) string {
	return "*" + md(s) + "*"
}

// newMessage creates a message with MarkdownV2 parse mode.
func newMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	return msg
}

// newPlainMessage creates a plain message without MarkdownV2 parse mode.
func newPlainMessage(chatID int64, text string) tgbotapi.MessageConfig {
	return tgbotapi.NewMessage(chatID, text)
}

func buildWelcomeMessage() string {
	var sb strings.Builder

	sb.WriteString(bold("Selamat datang di Belajarku Bot!"))
	sb.WriteString("\n\n")
	sb.WriteString(md("Belajar bersama guru Anda langsung dari Telegram:"))
	sb.WriteString("\n")
	sb.WriteString(md("📚 Jelajahi mata pelajaran dan materi\n"))
	sb.WriteString(md("🧩 Kerjakan kuis dan lihat skor Anda\n"))
	sb.WriteString(md("🎯 Dapatkan rekomendasi sesuai preferensi belajar\n"))
	sb.WriteString("\n")
	sb.WriteString(md("Mulai dengan masuk atau mendaftar ⬇️"))

	return sb.String()
}

func buildMuridDashboardMessage(dash *service.Dashboard) string {
	var sb strings.Builder

	sb.WriteString(bold("Dasbor Murid"))
	sb.WriteString("\n\n")

	if dash.ShowRecommendations() {
		sb.WriteString(bold("Rekomendasi Materi"))
		sb.WriteString("\n")
		sb.WriteString(md(dash.Recommendation.Message))
		sb.WriteString("\n\n")
		sb.WriteString(md("Pilih mata pelajaran di bawah untuk mulai belajar."))
		return sb.String()
	}

	sb.WriteString(bold("Materi Tersedia"))
	sb.WriteString("\n")
	if dash.RecommendationErr != nil {
		sb.WriteString(md(msgRecommendationGone))
		sb.WriteString("\n")
		sb.WriteString(md("💡 Gunakan /preferensi untuk mengatur preferensi Anda."))
		sb.WriteString("\n")
	}
	if len(dash.Subjects) == 0 {
		sb.WriteString("\n")
		sb.WriteString(md(msgNoSubjects))
	}

	return sb.String()
}

func buildSubjectMessage(subject entities.Subject, materials []entities.Material, quizzes []entities.Quiz) string {
	var sb strings.Builder

	sb.WriteString(bold(subject.NamaMapel))
	sb.WriteString("\n")
	sb.WriteString(md(subject.Deskripsi))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("Tingkat: %s", subject.TingkatKesulitan)))
	sb.WriteString("\n\n")

	sb.WriteString(bold("Materi"))
	sb.WriteString("\n")
	if len(materials) == 0 {
		sb.WriteString(md(msgNoMaterials))
		sb.WriteString("\n")
	} else {
		sb.WriteString(md("Pilih materi di bawah untuk membacanya."))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(bold("Kuis"))
	sb.WriteString("\n")
	if len(quizzes) == 0 {
		sb.WriteString(md(msgNoQuizzes))
	} else {
		sb.WriteString(md("Kuis yang sudah dikerjakan ditandai dengan skornya."))
	}

	return sb.String()
}

func buildMaterialMessage(material entities.Material) string {
	var sb strings.Builder

	sb.WriteString(bold(material.Judul))
	sb.WriteString("\n\n")
	sb.WriteString(md(material.Konten))

	return sb.String()
}

func buildQuestionMessage(q entities.Question, index, total int, selected string) string {
	var sb strings.Builder

	sb.WriteString(bold("Kuis"))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("Pertanyaan %d dari %d", index+1, total)))
	sb.WriteString("\n\n")
	sb.WriteString(md(q.Pertanyaan))
	sb.WriteString("\n\n")

	for _, letter := range entities.ChoiceLetters {
		marker := "▫️"
		if letter == selected {
			marker = "✅"
		}
		sb.WriteString(md(fmt.Sprintf("%s %s. %s", marker, letter, q.Choice(letter))))
		sb.WriteString("\n")
	}

	return sb.String()
}

func buildResultMessage(result *entities.QuizResult) string {
	var sb strings.Builder

	sb.WriteString(bold(result.Message))
	sb.WriteString("\n\n")
	if result.Score != nil {
		sb.WriteString(md(fmt.Sprintf("Skor Anda: %.0f%%", *result.Score)))
		sb.WriteString("\n")
	}
	if result.Benar != nil && result.TotalSoal != nil {
		sb.WriteString(md(fmt.Sprintf("Anda menjawab %d dari %d pertanyaan dengan benar.", *result.Benar, *result.TotalSoal)))
		sb.WriteString("\n")
	}
	if result.SubmittedAt != "" {
		sb.WriteString(md(fmt.Sprintf("Dikerjakan pada: %s", result.SubmittedAt)))
	}

	return sb.String()
}

func buildPreferencesMessage(prefs entities.Preferences) string {
	var sb strings.Builder

	sb.WriteString(bold("Preferensi Belajar"))
	sb.WriteString("\n")
	sb.WriteString(md("Bantu kami merekomendasikan materi terbaik untuk Anda."))
	sb.WriteString("\n\n")

	sb.WriteString(md(fmt.Sprintf("Materi favorit: %s", orDash(prefs.FavoriteSubject))))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("Gaya belajar: %s", orDash(prefs.GayaBelajar))))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("Bidang minat: %s", orDash(prefs.MinatBidang))))

	return sb.String()
}

func buildGuruDashboardMessage(user *entities.User) string {
	var sb strings.Builder

	sb.WriteString(bold("Dasbor Guru"))
	sb.WriteString("\n\n")
	sb.WriteString(md(fmt.Sprintf("Halo, %s! Pilih bagian yang ingin Anda kelola.", user.Nama)))

	return sb.String()
}

func buildPendingMuridMessage(pending []entities.PendingMurid) string {
	var sb strings.Builder

	sb.WriteString(bold("Verifikasi Murid Tertunda"))
	sb.WriteString("\n\n")
	if len(pending) == 0 {
		sb.WriteString(md(msgNoPendingMurid))
		return sb.String()
	}

	for _, m := range pending {
		sb.WriteString(md(fmt.Sprintf("• %s — %s (Kelas: %s)", m.Nama, m.Email, m.Kelas)))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(md("Tekan tombol untuk memverifikasi."))

	return sb.String()
}

func buildMuridListMessage(murid []entities.MuridDetail) string {
	var sb strings.Builder

	sb.WriteString(bold("Daftar Murid Anda"))
	sb.WriteString("\n\n")
	if len(murid) == 0 {
		sb.WriteString(md(msgNoMurid))
		return sb.String()
	}

	for _, m := range murid {
		sb.WriteString(md(fmt.Sprintf("• %s (%s) — %s", m.Nama, m.Kelas, m.Email)))
		sb.WriteString("\n")
		if m.GayaBelajar != nil && *m.GayaBelajar != "" {
			sb.WriteString(md(fmt.Sprintf("   Gaya: %s", *m.GayaBelajar)))
			sb.WriteString("\n")
		}
		if m.MinatBidang != nil && *m.MinatBidang != "" {
			sb.WriteString(md(fmt.Sprintf("   Minat: %s", *m.MinatBidang)))
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

func buildScoresMessage(results []entities.HasilQuiz, stats []entities.StatistikNilai, kelas string) string {
	var sb strings.Builder

	sb.WriteString(bold("Nilai Murid"))
	if kelas != "" && kelas != "all" {
		sb.WriteString(md(fmt.Sprintf(" — Kelas %s", kelas)))
	}
	sb.WriteString("\n\n")

	if len(results) == 0 {
		sb.WriteString(md(msgNoScores))
		return sb.String()
	}

	for _, r := range results {
		sb.WriteString(md(fmt.Sprintf("• %s (%s) — %s: %.0f%% (%d/%d)",
			r.MuridNama, r.Kelas, r.NamaMapel, r.Score, r.Benar, r.TotalSoal)))
		sb.WriteString("\n")
	}

	if len(stats) > 0 {
		sb.WriteString("\n")
		sb.WriteString(bold("Statistik per Mata Pelajaran"))
		sb.WriteString("\n")
		for _, s := range stats {
			sb.WriteString(md(fmt.Sprintf("• %s: %d kuis, rata-rata %.1f (min %.0f, max %.0f)",
				s.NamaMapel, s.JumlahQuiz, s.RataRata, s.NilaiMin, s.NilaiMax)))
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

func buildGuruSubjectsMessage(subjects []entities.Subject) string {
	var sb strings.Builder

	sb.WriteString(bold("Kelola Mata Pelajaran"))
	sb.WriteString("\n\n")
	if len(subjects) == 0 {
		sb.WriteString(md(msgNoSubjects))
		return sb.String()
	}
	for _, s := range subjects {
		sb.WriteString(md(fmt.Sprintf("• %s (%s) — %s", s.NamaMapel, s.TingkatKesulitan, s.Deskripsi)))
		sb.WriteString("\n")
	}

	return sb.String()
}

func buildGuruMaterialsMessage(materials []entities.Material) string {
	var sb strings.Builder

	sb.WriteString(bold("Kelola Materi"))
	sb.WriteString("\n\n")
	if len(materials) == 0 {
		sb.WriteString(md(msgNoMaterials))
		return sb.String()
	}
	for _, m := range materials {
		sb.WriteString(md(fmt.Sprintf("• %s — %s", m.Judul, m.NamaMapel)))
		sb.WriteString("\n")
	}

	return sb.String()
}

func buildGuruQuizzesMessage(quizzes []entities.Quiz) string {
	var sb strings.Builder

	sb.WriteString(bold("Kuis"))
	sb.WriteString("\n\n")
	if len(quizzes) == 0 {
		sb.WriteString(md(msgNoQuizzes))
		return sb.String()
	}
	for _, q := range quizzes {
		sb.WriteString(md(fmt.Sprintf("• %s — %s", q.Judul, q.NamaMapel)))
		sb.WriteString("\n")
	}

	return sb.String()
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
