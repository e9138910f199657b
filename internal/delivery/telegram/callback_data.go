package telegram

import (
	"strconv"
	"strings"
)

// Callback action constants.
const (
	actionDash     = "dash"
	actionSubject  = "subject"
	actionMaterial = "material"
	actionQuiz     = "quiz"
	actionPref     = "pref"
	actionAuth     = "auth"
	actionGuru     = "guru"
)

// Quiz sub-actions.
const (
	quizOpen   = "open"
	quizAnswer = "ans"
	quizNav    = "nav"
	quizSubmit = "submit"
)

// Quiz navigation directions.
const (
	navPrev = "prev"
	navNext = "next"
)

// Preferences sub-actions.
const (
	prefMenu  = "menu"
	prefGaya  = "gaya"
	prefFav   = "fav"
	prefMinat = "minat"
	prefSave  = "save"
)

// Auth sub-actions.
const (
	authRole     = "role"
	authLogin    = "login"
	authRegister = "register"
)

// Guru sub-actions (dashboard tabs and item actions).
const (
	guruPending   = "pending"
	guruMurid     = "murid"
	guruMapel     = "mapel"
	guruMateri    = "materi"
	guruQuiz      = "quiz"
	guruNilai     = "nilai"
	guruVerify    = "verify"
	guruDelMapel  = "delmapel"
	guruAddMapel  = "addmapel"
	guruAddMateri = "addmateri"
	guruAddQuiz   = "addquiz"
	guruQuizSoal  = "soal"
	guruQuizSave  = "save"
)

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	if len(parts) == 0 {
		return callbackData{Raw: data}
	}

	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

func buildDashCallback() string {
	return callbackData{Action: actionDash}.encode()
}

func buildSubjectCallback(subjectID int64) string {
	return callbackData{
		Action: actionSubject,
		Params: []string{strconv.FormatInt(subjectID, 10)},
	}.encode()
}

func buildMaterialCallback(subjectID, materialID int64) string {
	return callbackData{
		Action: actionMaterial,
		Params: []string{
			strconv.FormatInt(subjectID, 10),
			strconv.FormatInt(materialID, 10),
		},
	}.encode()
}

// buildQuizOpenCallback builds callback data for activating a quiz attempt.
func buildQuizOpenCallback(quizID int64) string {
	return callbackData{
		Action: actionQuiz,
		Params: []string{quizOpen, strconv.FormatInt(quizID, 10)},
	}.encode()
}

// buildQuizAnswerCallback builds callback data for answering the current
// question with a choice letter.
func buildQuizAnswerCallback(quizID, questionID int64, letter string) string {
	return callbackData{
		Action: actionQuiz,
		Params: []string{
			quizAnswer,
			strconv.FormatInt(quizID, 10),
			strconv.FormatInt(questionID, 10),
			letter,
		},
	}.encode()
}

func buildQuizNavCallback(quizID int64, direction string) string {
	return callbackData{
		Action: actionQuiz,
		Params: []string{quizNav, strconv.FormatInt(quizID, 10), direction},
	}.encode()
}

func buildQuizSubmitCallback(quizID int64) string {
	return callbackData{
		Action: actionQuiz,
		Params: []string{quizSubmit, strconv.FormatInt(quizID, 10)},
	}.encode()
}

// buildPrefCallback builds callback data for preferences-related actions.
func buildPrefCallback(subAction string, value ...string) string {
	params := []string{subAction}
	params = append(params, value...)
	return callbackData{
		Action: actionPref,
		Params: params,
	}.encode()
}

// buildAuthRoleCallback builds callback data for picking a role during the
// login conversation.
func buildAuthRoleCallback(role string) string {
	return callbackData{
		Action: actionAuth,
		Params: []string{authRole, role},
	}.encode()
}

func buildAuthLoginCallback() string {
	return callbackData{Action: actionAuth, Params: []string{authLogin}}.encode()
}

func buildAuthRegisterCallback() string {
	return callbackData{Action: actionAuth, Params: []string{authRegister}}.encode()
}

// buildGuruCallback builds callback data for guru dashboard actions.
func buildGuruCallback(subAction string, value ...string) string {
	params := []string{subAction}
	params = append(params, value...)
	return callbackData{
		Action: actionGuru,
		Params: params,
	}.encode()
}

func buildGuruVerifyCallback(muridID int64) string {
	return buildGuruCallback(guruVerify, strconv.FormatInt(muridID, 10))
}

func buildGuruDeleteSubjectCallback(subjectID int64) string {
	return buildGuruCallback(guruDelMapel, strconv.FormatInt(subjectID, 10))
}

func buildGuruNilaiCallback(kelas string) string {
	return buildGuruCallback(guruNilai, kelas)
}
