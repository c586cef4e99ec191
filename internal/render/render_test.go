package render

import (
	"errors"
	"testing"

	sans "github.com/kcri-tz/sans-go"
)

func TestDefaultReturnsNotImplemented(t *testing.T) {
	_, err := Default.Render("(a,b,c);")
	if !errors.Is(err, sans.ErrNotImplemented) {
		t.Errorf("Render() error = %v, want ErrNotImplemented", err)
	}
}
