package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

const defaultBackground = "subway_surfers"

// backgroundClips is the fixed name -> asset file table. Script
// backgrounds outside this table resolve to the default clip.
var backgroundClips = map[string]string{
	"subway_surfers": "subway_surfers.mp4",
	"minecraft":      "minecraft_parkour.mp4",
	"satisfying":     "satisfying.mp4",
	"soap_cutting":   "soap_cutting.mp4",
}

// LocalStorage owns the on-disk layout: background assets under
// assetsDir/backgrounds, rendered videos and narration audio named by
// render id under their own directories.
type LocalStorage struct {
	assetsDir string
	videoDir  string
	audioDir  string
}

func NewLocalStorage(assetsDir, videoDir, audioDir string) *LocalStorage {
	return &LocalStorage{
		assetsDir: assetsDir,
		videoDir:  videoDir,
		audioDir:  audioDir,
	}
}

func (s *LocalStorage) EnsureDirectories() error {
	for _, dir := range []string{s.BackgroundDir(), s.videoDir, s.audioDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

func (s *LocalStorage) BackgroundDir() string {
	return filepath.Join(s.assetsDir, "backgrounds")
}

func (s *LocalStorage) BackgroundClip(name string) (string, bool) {
	file, ok := backgroundClips[name]
	if !ok {
		file = backgroundClips[defaultBackground]
	}

	path := filepath.Join(s.BackgroundDir(), file)
	if _, err := os.Stat(path); err != nil {
		return "", false
	}
	return path, true
}

func (s *LocalStorage) VideoDir() string {
	return s.videoDir
}

func (s *LocalStorage) AudioPath(renderID string) string {
	return filepath.Join(s.audioDir, renderID+".mp3")
}
