package lipgloss_test

import (
	"testing"

	"github.com/fwojciec/kisspad"
	"github.com/fwojciec/kisspad/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTheme(t *testing.T) {
	t.Parallel()

	t.Run("implements Theme interface", func(t *testing.T) {
		t.Parallel()

		var _ kisspad.Theme = lipgloss.DefaultTheme()
	})

	t.Run("is the light theme", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "light", lipgloss.DefaultTheme().Name())
	})
}

func TestThemes_PaletteIsComplete(t *testing.T) {
	t.Parallel()

	for _, theme := range []*lipgloss.Theme{lipgloss.LightTheme(), lipgloss.DarkTheme()} {
		t.Run(theme.Name(), func(t *testing.T) {
			t.Parallel()

			p := theme.Palette()
			for _, c := range []kisspad.ColorID{
				p.Background, p.Default, p.Command, p.Include, p.Label, p.Comment,
				p.Number, p.Char, p.String, p.Keyword, p.ErrorBackground,
			} {
				assert.Regexp(t, `^#[0-9a-f]{6}$`, string(c))
			}
			assert.NotEqual(t, p.Background, p.ErrorBackground)
		})
	}
}

func TestLightTheme_ClassicColors(t *testing.T) {
	t.Parallel()

	p := lipgloss.LightTheme().Palette()

	assert.Equal(t, kisspad.ColorID("#3b82f6"), p.Command)
	assert.Equal(t, kisspad.ColorID("#10b981"), p.Include)
	assert.Equal(t, kisspad.ColorID("#f59e0b"), p.Label)
	assert.Equal(t, kisspad.ColorID("#fee2e2"), p.ErrorBackground)
	assert.Equal(t, p.Char, p.String)
}

func TestThemeByName(t *testing.T) {
	t.Parallel()

	t.Run("known names", func(t *testing.T) {
		t.Parallel()

		for _, name := range []string{"light", "dark"} {
			theme, err := lipgloss.ThemeByName(name)
			require.NoError(t, err)
			assert.Equal(t, name, theme.Name())
		}
	})

	t.Run("empty name is the default", func(t *testing.T) {
		t.Parallel()

		theme, err := lipgloss.ThemeByName("")
		require.NoError(t, err)
		assert.Equal(t, "light", theme.Name())
	})

	t.Run("unknown name", func(t *testing.T) {
		t.Parallel()

		_, err := lipgloss.ThemeByName("solarized")
		assert.EqualError(t, err, `lipgloss: unknown theme "solarized"`)
	})
}
