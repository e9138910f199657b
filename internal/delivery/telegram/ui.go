package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/belajarku/belajarku-bot/internal/domain/entities"
)

// buildAuthKeyboard builds the entry keyboard for anonymous chats.
func buildAuthKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔑 Masuk", buildAuthLoginCallback()),
			tgbotapi.NewInlineKeyboardButtonData("📝 Daftar", buildAuthRegisterCallback()),
		),
	)
}

// buildRoleKeyboard builds the role picker of the login conversation.
func buildRoleKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🧑‍🎓 Murid", buildAuthRoleCallback(string(entities.RoleMurid))),
			tgbotapi.NewInlineKeyboardButtonData("🧑‍🏫 Guru", buildAuthRoleCallback(string(entities.RoleGuru))),
		),
	)
}

// buildSubjectListKeyboard builds one button per subject.
func buildSubjectListKeyboard(subjects []entities.Subject) *tgbotapi.InlineKeyboardMarkup {
	if len(subjects) == 0 {
		return nil
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, s := range subjects {
		label := fmt.Sprintf("📚 %s (%s)", s.NamaMapel, s.TingkatKesulitan)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, buildSubjectCallback(s.ID)),
		))
	}
	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &kb
}

// buildSubjectKeyboard builds the materials and quizzes of one subject.
// Taken quizzes render their score and stay tappable: re-opening shows the
// recorded result, never the questions.
func buildSubjectKeyboard(subject entities.Subject, materials []entities.Material, quizzes []entities.Quiz) *tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	for _, m := range materials {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📄 "+m.Judul, buildMaterialCallback(subject.ID, m.ID)),
		))
	}
	for _, q := range quizzes {
		label := "🧩 " + q.Judul
		if q.Taken() {
			label = fmt.Sprintf("✅ %s — Skor: %.0f%%", q.Judul, *q.Score)
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, buildQuizOpenCallback(q.ID)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("« Kembali ke dasbor", buildDashCallback()),
	))

	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &kb
}

// buildQuestionKeyboard builds the answer and navigation controls for the
// question under the cursor. The submit button appears only on the last
// question and only once every question has an answer, mirroring the
// client-side completeness gate.
func buildQuestionKeyboard(quizID int64, q entities.Question, index, total int, complete bool) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	for _, letter := range entities.ChoiceLetters {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("%s. %s", letter, q.Choice(letter)),
				buildQuizAnswerCallback(quizID, q.ID, letter),
			),
		))
	}

	var nav []tgbotapi.InlineKeyboardButton
	if index > 0 {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("◀️ Sebelumnya", buildQuizNavCallback(quizID, navPrev)))
	}
	if index < total-1 {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("Berikutnya ▶️", buildQuizNavCallback(quizID, navNext)))
	}
	if len(nav) > 0 {
		rows = append(rows, nav)
	}

	if index == total-1 && complete {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📨 Kirim Kuis", buildQuizSubmitCallback(quizID)),
		))
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildResultKeyboard builds the controls shown under a recorded result.
func buildResultKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("« Kembali ke dasbor", buildDashCallback()),
		),
	)
}

// buildPreferencesKeyboard builds the preferences editor.
func buildPreferencesKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📚 Materi Favorit", buildPrefCallback(prefFav)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🧠 Gaya Belajar", buildPrefCallback(prefGaya)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎯 Bidang Minat", buildPrefCallback(prefMinat)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💾 Simpan Preferensi", buildPrefCallback(prefSave)),
		),
	)
}

// buildStyleKeyboard builds the learning style picker.
func buildStyleKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Visual (Grafik, gambar)", buildPrefCallback(prefGaya, entities.StyleVisual)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Audio (Ceramah, diskusi)", buildPrefCallback(prefGaya, entities.StyleAudio)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Kinestetik (Praktik, interaktif)", buildPrefCallback(prefGaya, entities.StyleKinestetik)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("« Kembali", buildPrefCallback(prefMenu)),
		),
	)
}

// buildFavoriteKeyboard builds the favorite subject picker from the murid's
// subject catalog.
func buildFavoriteKeyboard(subjects []entities.Subject) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, s := range subjects {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(s.NamaMapel, buildPrefCallback(prefFav, s.NamaMapel)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("« Kembali", buildPrefCallback(prefMenu)),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildGuruDashboardKeyboard builds the guru dashboard tabs.
func buildGuruDashboardKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Verifikasi Murid", buildGuruCallback(guruPending)),
			tgbotapi.NewInlineKeyboardButtonData("👥 Daftar Murid", buildGuruCallback(guruMurid)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📚 Kelola Mapel", buildGuruCallback(guruMapel)),
			tgbotapi.NewInlineKeyboardButtonData("📄 Kelola Materi", buildGuruCallback(guruMateri)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🧩 Kuis", buildGuruCallback(guruQuiz)),
			tgbotapi.NewInlineKeyboardButtonData("🏆 Nilai", buildGuruNilaiCallback("all")),
		),
	)
}

// buildPendingKeyboard builds one verify button per pending murid.
func buildPendingKeyboard(pending []entities.PendingMurid) *tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, m := range pending {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Verifikasi "+m.Nama, buildGuruVerifyCallback(m.ID)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("« Kembali ke dasbor", buildDashCallback()),
	))
	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &kb
}

// buildGuruSubjectsKeyboard builds the subject manager: delete per subject
// plus a create button.
func buildGuruSubjectsKeyboard(subjects []entities.Subject) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, s := range subjects {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗑 Hapus "+s.NamaMapel, buildGuruDeleteSubjectCallback(s.ID)),
		))
	}
	rows = append(rows,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➕ Tambah Mapel", buildGuruCallback(guruAddMapel)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("« Kembali ke dasbor", buildDashCallback()),
		),
	)
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildGuruMaterialsKeyboard builds the material manager controls.
func buildGuruMaterialsKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➕ Tambah Materi", buildGuruCallback(guruAddMateri)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("« Kembali ke dasbor", buildDashCallback()),
		),
	)
}

// buildGuruQuizzesKeyboard builds the quiz manager controls.
func buildGuruQuizzesKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➕ Buat Kuis", buildGuruCallback(guruAddQuiz)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("« Kembali ke dasbor", buildDashCallback()),
		),
	)
}

// buildSubjectPickKeyboard lists the guru's subjects for flows that attach
// content to one (material and quiz creation).
func buildSubjectPickKeyboard(subjects []entities.Subject, subAction string) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, s := range subjects {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(s.NamaMapel, buildGuruCallback(subAction, fmt.Sprintf("%d", s.ID))),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildDifficultyKeyboard builds the difficulty picker of the subject
// creation flow.
func buildDifficultyKeyboard() tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, level := range difficultyLevels {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(level, buildGuruCallback(guruAddMapel, level)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildCorrectAnswerKeyboard asks which choice letter is correct for the
// question being authored.
func buildCorrectAnswerKeyboard() tgbotapi.InlineKeyboardMarkup {
	var row []tgbotapi.InlineKeyboardButton
	for _, letter := range entities.ChoiceLetters {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(letter, buildGuruCallback(guruQuizSoal, letter)))
	}
	return tgbotapi.NewInlineKeyboardMarkup(row)
}

// buildQuizAuthoringKeyboard is shown after each completed question.
func buildQuizAuthoringKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➕ Tambah Pertanyaan", buildGuruCallback(guruAddQuiz, "soal")),
			tgbotapi.NewInlineKeyboardButtonData("💾 Simpan Kuis", buildGuruCallback(guruQuizSave)),
		),
	)
}

// buildScoresKeyboard offers kelas filters plus a back button.
func buildScoresKeyboard(classes []string) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	var row []tgbotapi.InlineKeyboardButton
	row = append(row, tgbotapi.NewInlineKeyboardButtonData("Semua", buildGuruNilaiCallback("all")))
	for _, kelas := range classes {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(kelas, buildGuruNilaiCallback(kelas)))
		if len(row) == 4 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("« Kembali ke dasbor", buildDashCallback()),
	))

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
