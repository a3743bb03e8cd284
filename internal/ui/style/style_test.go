package style_test

import (
	"bytes"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/yamldoc/internal/ui/style"
)

func TestPaint(t *testing.T) {
	var buf bytes.Buffer

	plain := termenv.NewOutput(&buf, termenv.WithProfile(termenv.Ascii))
	assert.Equal(t, "ok", style.Paint(plain, "ok", style.Success))
	assert.Equal(t, "ok", style.Faint(plain, "ok"))

	colored := termenv.NewOutput(&buf, termenv.WithProfile(termenv.ANSI))
	painted := style.Paint(colored, "ok", style.Failure)
	assert.Contains(t, painted, "ok")
	assert.NotEqual(t, "ok", painted)
}
