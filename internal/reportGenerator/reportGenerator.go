package reportGenerator

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/KotFed0t/schedule_fa/utils"
)

type File struct {
	Path    string
	Content []byte
}

// WriteAll stages every file next to its destination and renames them into
// place only after all of them were written. On failure nothing is replaced.
func WriteAll(ctx context.Context, files ...File) error {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "reportGenerator.WriteAll"

	staged := make([]string, 0, len(files))
	discard := func(paths []string) {
		for _, p := range paths {
			_ = os.Remove(p)
		}
	}

	for _, file := range files {
		tmp, err := stage(file)
		if err != nil {
			slog.Error("can't stage output", slog.String("rqID", rqID), slog.String("op", op), slog.String("path", file.Path), slog.String("err", err.Error()))
			discard(staged)
			return err
		}
		staged = append(staged, tmp)
	}

	for i, file := range files {
		if err := os.Rename(staged[i], file.Path); err != nil {
			slog.Error("can't move output into place", slog.String("rqID", rqID), slog.String("op", op), slog.String("path", file.Path), slog.String("err", err.Error()))
			discard(staged[i:])
			return err
		}
		slog.Info("Output written", slog.String("rqID", rqID), slog.String("path", file.Path))
	}

	return nil
}

func stage(file File) (path string, err error) {
	tmp, err := os.CreateTemp(filepath.Dir(file.Path), "."+filepath.Base(file.Path)+".*")
	if err != nil {
		return "", err
	}
	defer func() {
		if closeErr := tmp.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(file.Content); err != nil {
		return "", err
	}
	if err = tmp.Chmod(0o644); err != nil {
		return "", err
	}

	return tmp.Name(), nil
}
