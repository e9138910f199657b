package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Empty manager views name the thing that is missing.
func TestEmptyListMessages(t *testing.T) {
	assert.Contains(t, buildGuruSubjectsMessage(nil), "mata pelajaran")
	assert.Contains(t, buildGuruMaterialsMessage(nil), "materi")
	assert.Contains(t, buildGuruQuizzesMessage(nil), "kuis")
}
