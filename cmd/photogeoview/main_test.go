package main

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justyntemme/photogeoview/internal/config"
	"github.com/justyntemme/photogeoview/internal/view"
)

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	out := new(bytes.Buffer)
	root.SetOut(out)
	root.SetErr(out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writePNG(t *testing.T, path string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 64, 48))
	img.Set(3, 3, color.RGBA{G: 200, A: 255})
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

// fixture builds a folder with a subfolder, two photos and a non-photo file.
func fixture(t *testing.T) (dir, cfg string) {
	t.Helper()
	dir = t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "trip"), 0o755))
	writePNG(t, filepath.Join(dir, "b.png"))
	writePNG(t, filepath.Join(dir, "a.png"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	return dir, filepath.Join(t.TempDir(), "config.json")
}

func names(out string) []string {
	var ns []string
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		f := strings.Fields(line)
		if len(f) > 0 {
			ns = append(ns, f[len(f)-1])
		}
	}
	return ns
}

func TestRootHelp(t *testing.T) {
	out, err := executeCommand(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "photogeoview [command]")
	for _, sub := range []string{"open", "ls", "info", "thumb", "roots"} {
		assert.Contains(t, out, sub)
	}
}

func TestLsOrdersLikeTheBrowser(t *testing.T) {
	dir, cfg := fixture(t)

	out, err := executeCommand(t, "--config", cfg, "ls", dir)
	require.NoError(t, err, out)
	assert.Equal(t, []string{"trip/", "a.png", "b.png"}, names(out))

	out, err = executeCommand(t, "--config", cfg, "--sort", "name", "--desc", "ls", dir)
	require.NoError(t, err, out)
	assert.Equal(t, []string{"trip/", "b.png", "a.png"}, names(out), "folders stay first when descending")
}

func TestLsErrors(t *testing.T) {
	dir, cfg := fixture(t)

	_, err := executeCommand(t, "--config", cfg, "--view", "mosaic", "ls", dir)
	assert.ErrorContains(t, err, "unknown view mode")

	_, err = executeCommand(t, "--config", cfg, "ls", filepath.Join(dir, "missing"))
	assert.Error(t, err)

	_, err = executeCommand(t, "--config", cfg, "ls")
	assert.Error(t, err)
}

func TestInfo(t *testing.T) {
	dir, cfg := fixture(t)

	out, err := executeCommand(t, "--config", cfg, "info", filepath.Join(dir, "a.png"))
	require.NoError(t, err, out)
	assert.Contains(t, out, "a.png")
	assert.Contains(t, out, "EXIF:      none")
	assert.NotContains(t, out, "unavailable")
}

func TestThumbWritesJPEG(t *testing.T) {
	dir, cfg := fixture(t)
	dst := filepath.Join(t.TempDir(), "thumb.jpg")

	out, err := executeCommand(t, "--config", cfg, "thumb", filepath.Join(dir, "a.png"), "-o", dst)
	require.NoError(t, err, out)

	f, err := os.Open(dst)
	require.NoError(t, err)
	defer f.Close()
	img, err := jpeg.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
}

func TestThumbRequiresOutput(t *testing.T) {
	dir, cfg := fixture(t)
	_, err := executeCommand(t, "--config", cfg, "thumb", filepath.Join(dir, "a.png"))
	assert.Error(t, err)
}

func TestRoots(t *testing.T) {
	_, err := executeCommand(t, "roots")
	assert.NoError(t, err)
}

func TestClassifyArgs(t *testing.T) {
	dir, _ := fixture(t)

	d, photos, err := classifyArgs([]string{dir})
	require.NoError(t, err)
	assert.Equal(t, dir, d)
	assert.Empty(t, photos)

	d, photos, err = classifyArgs([]string{filepath.Join(dir, "a.png"), filepath.Join(dir, "b.png")})
	require.NoError(t, err)
	assert.Empty(t, d)
	assert.Len(t, photos, 2)

	_, _, err = classifyArgs([]string{dir, filepath.Join(dir, "a.png")})
	assert.Error(t, err)

	_, _, err = classifyArgs([]string{filepath.Join(dir, "nope")})
	assert.Error(t, err)

	d, photos, err = classifyArgs(nil)
	require.NoError(t, err)
	assert.Empty(t, d)
	assert.Empty(t, photos)
}

func TestOverridesOnlyWhenSet(t *testing.T) {
	g := &globalFlags{}
	cmd := &cobra.Command{Use: "x"}
	cmd.Flags().StringVar(&g.view, "view", "", "")
	cmd.Flags().StringVar(&g.sort, "sort", "", "")
	cmd.Flags().BoolVar(&g.desc, "desc", false, "")
	require.NoError(t, cmd.ParseFlags([]string{"--sort", "date"}))

	cfg := testConfig()
	ov, err := applyOverrides(cmd, &cfg, g)
	require.NoError(t, err)
	assert.Equal(t, "date", cfg.Browser.SortKey)
	assert.Equal(t, "grid", cfg.Browser.ViewMode, "unset flag keeps the config value")
	assert.Equal(t, "asc", cfg.Browser.SortOrder)

	require.NotNil(t, ov.Key)
	assert.Equal(t, view.ByDate, *ov.Key)
	assert.Nil(t, ov.Mode)
	assert.Nil(t, ov.Order)
}

func testConfig() config.Config { return *config.DefaultConfig() }
