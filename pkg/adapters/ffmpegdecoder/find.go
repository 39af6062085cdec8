package ffmpegdecoder

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// FFmpegInstallURL is shown to users when ffmpeg or ffprobe is missing.
const FFmpegInstallURL = "https://ffmpeg.org/download.html"

// DependencyError reports a missing external executable.
type DependencyError struct {
	Name       string
	InstallURL string
	Detail     string
}

func (e *DependencyError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s not found (%s). Install from: %s", e.Name, e.Detail, e.InstallURL)
	}
	return fmt.Sprintf("%s not found. Install from: %s", e.Name, e.InstallURL)
}

// Is lets errors.Is match ErrFFmpegNotFound for any missing executable.
func (e *DependencyError) Is(target error) bool {
	return target == ErrFFmpegNotFound
}

// FindFFmpeg locates the ffmpeg executable.
// Lookup order: customPath, $FFMPEG_PATH, PATH, common install locations.
func FindFFmpeg(customPath string) (string, error) {
	return findExecutable("ffmpeg", customPath, "FFMPEG_PATH")
}

// FindFFprobe locates the ffprobe executable the same way as FindFFmpeg,
// using $FFPROBE_PATH.
func FindFFprobe(customPath string) (string, error) {
	return findExecutable("ffprobe", customPath, "FFPROBE_PATH")
}

func findExecutable(name, customPath, envVar string) (string, error) {
	if customPath != "" {
		if _, err := os.Stat(customPath); err == nil {
			return customPath, nil
		}
		return "", &DependencyError{Name: name, InstallURL: FFmpegInstallURL, Detail: "custom path " + customPath}
	}

	if envPath := os.Getenv(envVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath, nil
		}
		return "", &DependencyError{Name: name, InstallURL: FFmpegInstallURL, Detail: envVar + "=" + envPath}
	}

	execName := name
	if runtime.GOOS == "windows" {
		execName = name + ".exe"
	}
	if path, err := exec.LookPath(execName); err == nil {
		return path, nil
	}

	for _, dir := range commonDirs() {
		p := dir + string(os.PathSeparator) + execName
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", &DependencyError{Name: name, InstallURL: FFmpegInstallURL}
}

func commonDirs() []string {
	if runtime.GOOS == "windows" {
		return []string{
			`C:\ffmpeg\bin`,
			`C:\Program Files\ffmpeg\bin`,
			`C:\Program Files (x86)\ffmpeg\bin`,
		}
	}
	return []string{
		"/usr/bin",
		"/usr/local/bin",
		"/opt/homebrew/bin",
		"/snap/bin",
	}
}
