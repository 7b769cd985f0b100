package themes

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lightshop/internal/models"
)

func TestParseHSL(t *testing.T) {
	tests := []struct {
		in      string
		want    HSL
		wantErr bool
	}{
		{in: "217 91% 60%", want: HSL{217, 91, 60}},
		{in: "  0 0% 0% ", want: HSL{0, 0, 0}},
		{in: "360 100% 100%", want: HSL{360, 100, 100}},
		{in: "38.5 92% 50.25%", want: HSL{38.5, 92, 50.25}},
		{in: "217, 91%, 60%", want: HSL{217, 91, 60}},
		{in: "217deg 91% 60%", want: HSL{217, 91, 60}},
		{in: "361 50% 50%", wantErr: true},
		{in: "-1 50% 50%", wantErr: true},
		{in: "217 101% 60%", wantErr: true},
		{in: "217 91 60", wantErr: true},
		{in: "#ff0000", wantErr: true},
		{in: "", wantErr: true},
		{in: "217 91% 60% 1", wantErr: true},
		{in: "NaN 50% 50%", wantErr: true},
		{in: "217 NaN% 50%", wantErr: true},
		{in: "217 50% nan%", wantErr: true},
		{in: "Inf 50% 50%", wantErr: true},
		{in: "1e2 50% 50%", wantErr: true},
		{in: "0x10 50% 50%", wantErr: true},
		{in: ". 50% 50%", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHSL(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidHSL)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHSLString(t *testing.T) {
	assert.Equal(t, "217 91% 60%", HSL{217, 91, 60}.String())
	assert.Equal(t, "38.5 92% 50.25%", HSL{38.5, 92, 50.25}.String())
}

func TestGenerateCSSDefaults(t *testing.T) {
	css := GenerateCSS(models.DefaultSiteSettings())

	assert.True(t, strings.HasPrefix(css, ":root{"))
	assert.Contains(t, css, "--primary:217 91% 60%;")
	assert.Contains(t, css, "--secondary:262 83% 58%;")
	assert.Contains(t, css, "--accent:38 92% 50%;")
	assert.Contains(t, css, "--background:222 47% 5%;")
	assert.Contains(t, css, "--foreground:210 40% 98%;")
	assert.Contains(t, css, "--radius:12px;")
	assert.Contains(t, css, `--font-heading:"Montserrat", sans-serif;`)
	assert.Contains(t, css, `--font-body:"Inter", sans-serif;`)
	assert.Contains(t, css, "--font-size:16px;")
}

func TestGenerateCSSReflectsChanges(t *testing.T) {
	s := models.DefaultSiteSettings()
	s.PrimaryColor = "0 100% 50%"
	s.BorderRadius = 0

	css := GenerateCSS(s)
	assert.Contains(t, css, "--primary:0 100% 50%;")
	assert.Contains(t, css, "--radius:0px;")
}

func TestGenerateCSSSanitizes(t *testing.T) {
	s := models.DefaultSiteSettings()
	s.HeadingFont = `Evil"; } body { display:none`
	s.BodyFont = "  "
	s.AccentColor = "red; background: url(x)"

	css := GenerateCSS(s)
	assert.Equal(t, 1, strings.Count(css, "{"), "no extra blocks: %s", css)
	assert.Equal(t, 1, strings.Count(css, "}"), "no extra blocks: %s", css)
	assert.Contains(t, css, "--font-body:sans-serif;")
	assert.Contains(t, css, "--accent:0 0% 50%;")
}

func TestValidFont(t *testing.T) {
	assert.True(t, ValidFont("Montserrat"))
	assert.True(t, ValidFont("Open Sans"))
	assert.False(t, ValidFont(""))
	assert.False(t, ValidFont(`Inter"; color: red`))
	assert.False(t, ValidFont(strings.Repeat("a", 101)))
}
