package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBackgroundClip(t *testing.T) {
	assetsDir := t.TempDir()
	store := NewLocalStorage(assetsDir, t.TempDir(), t.TempDir())
	if err := store.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories() error = %v", err)
	}

	clipPath := filepath.Join(store.BackgroundDir(), "minecraft_parkour.mp4")
	if err := os.WriteFile(clipPath, []byte("video"), 0644); err != nil {
		t.Fatal(err)
	}

	t.Run("existingClip", func(t *testing.T) {
		path, ok := store.BackgroundClip("minecraft")
		if !ok {
			t.Fatal("BackgroundClip(minecraft) ok = false, want true")
		}
		if path != clipPath {
			t.Errorf("path = %q, want %q", path, clipPath)
		}
	})

	t.Run("missingAssetFile", func(t *testing.T) {
		if _, ok := store.BackgroundClip("satisfying"); ok {
			t.Error("BackgroundClip(satisfying) ok = true, want false for missing file")
		}
	})

	t.Run("unknownNameUsesDefault", func(t *testing.T) {
		defaultPath := filepath.Join(store.BackgroundDir(), "subway_surfers.mp4")
		if err := os.WriteFile(defaultPath, []byte("video"), 0644); err != nil {
			t.Fatal(err)
		}
		path, ok := store.BackgroundClip("vaporwave")
		if !ok {
			t.Fatal("BackgroundClip(vaporwave) ok = false, want default clip")
		}
		if path != defaultPath {
			t.Errorf("path = %q, want default %q", path, defaultPath)
		}
	})
}

func TestEnsureDirectories(t *testing.T) {
	base := t.TempDir()
	store := NewLocalStorage(
		filepath.Join(base, "assets"),
		filepath.Join(base, "videos"),
		filepath.Join(base, "audio"),
	)

	if err := store.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories() error = %v", err)
	}

	for _, dir := range []string{store.BackgroundDir(), store.VideoDir(), filepath.Join(base, "audio")} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			t.Errorf("directory %s not created", dir)
		}
	}
}

func TestAudioPath(t *testing.T) {
	store := NewLocalStorage("/assets", "/videos", "/audio")
	got := store.AudioPath("render-123")
	want := filepath.Join("/audio", "render-123.mp3")
	if got != want {
		t.Errorf("AudioPath() = %q, want %q", got, want)
	}
}
