package utils

import (
	"archive/zip"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TempFilePath returns a unique path inside dir for a temporary archive.
func TempFilePath(dir, prefix string) string {
	timestamp := time.Now().Unix()
	archiveUUID, _ := uuid.NewRandom()
	return filepath.Join(dir, fmt.Sprintf("%s_%d_%s.zip", prefix, timestamp, archiveUUID.String()[:8]))
}

// RemoveFile deletes path, logging instead of failing when it cannot.
func RemoveFile(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Printf("zipper: Error deleting file %s: %v", path, err)
	}
}

// CreateFileZip creates a single-entry ZIP archive of sourcePath.
// entryName: the path stored inside the archive (slash separated).
// zipFilePath: where the ZIP file is written.
// Returns: size in bytes, error. A partially written archive is removed.
func CreateFileZip(sourcePath, entryName, zipFilePath string) (size int64, err error) {
	info, err := os.Stat(sourcePath)
	if err != nil {
		return 0, fmt.Errorf("error stating file %s: %w", sourcePath, err)
	}

	if err := os.MkdirAll(filepath.Dir(zipFilePath), 0755); err != nil {
		return 0, fmt.Errorf("failed to create zip save directory %s: %w", filepath.Dir(zipFilePath), err)
	}

	zipFile, err := os.Create(zipFilePath)
	if err != nil {
		return 0, fmt.Errorf("failed to create zip file %s: %w", zipFilePath, err)
	}
	defer func() {
		if err != nil {
			zipFile.Close()
			RemoveFile(zipFilePath)
		}
	}()

	fileToZip, err := os.Open(sourcePath)
	if err != nil {
		return 0, fmt.Errorf("failed to open file %s for zipping: %w", sourcePath, err)
	}
	defer fileToZip.Close()

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return 0, fmt.Errorf("failed to build zip header for %s: %w", sourcePath, err)
	}
	header.Name = filepath.ToSlash(entryName)
	header.Method = zip.Deflate

	zipWriter := zip.NewWriter(zipFile)
	writer, err := zipWriter.CreateHeader(header)
	if err != nil {
		return 0, fmt.Errorf("failed to create entry %s in zip: %w", header.Name, err)
	}
	if _, err = io.Copy(writer, fileToZip); err != nil {
		return 0, fmt.Errorf("failed to write file %s to zip: %w", sourcePath, err)
	}
	if err = zipWriter.Close(); err != nil {
		return 0, fmt.Errorf("failed to finalize zip writer for %s: %w", zipFilePath, err)
	}
	if err = zipFile.Close(); err != nil {
		return 0, fmt.Errorf("failed to close zip file %s: %w", zipFilePath, err)
	}

	zipInfo, err := os.Stat(zipFilePath)
	if err != nil {
		return 0, fmt.Errorf("failed to stat created zip file %s: %w", zipFilePath, err)
	}
	return zipInfo.Size(), nil
}

// safeJoin resolves an archive entry name under destDir, rejecting names that
// would escape it.
func safeJoin(destDir, name string) (string, error) {
	target := filepath.Join(destDir, filepath.FromSlash(name))
	rel, err := filepath.Rel(destDir, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(name) {
		return "", fmt.Errorf("archive entry %q escapes %s", name, destDir)
	}
	return target, nil
}

func extractEntry(f *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", target, err)
	}
	src, err := f.Open()
	if err != nil {
		return fmt.Errorf("failed to open archive entry %s: %w", f.Name, err)
	}
	defer src.Close()

	dst, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", target, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return fmt.Errorf("failed to extract %s: %w", f.Name, err)
	}
	return dst.Close()
}

// ExtractZip extracts every entry of the archive at zipFilePath into destDir,
// keeping the stored relative paths. Returns the extracted entry names.
func ExtractZip(zipFilePath, destDir string) ([]string, error) {
	reader, err := zip.OpenReader(zipFilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open zip file %s: %w", zipFilePath, err)
	}
	defer reader.Close()

	var extracted []string
	for _, f := range reader.File {
		target, err := safeJoin(destDir, f.Name)
		if err != nil {
			return extracted, err
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return extracted, fmt.Errorf("failed to create directory %s: %w", target, err)
			}
			continue
		}
		if err := extractEntry(f, target); err != nil {
			return extracted, err
		}
		extracted = append(extracted, f.Name)
	}
	return extracted, nil
}

// ExtractZipEntry extracts the single entry named entryName to target.
func ExtractZipEntry(zipFilePath, entryName, target string) error {
	reader, err := zip.OpenReader(zipFilePath)
	if err != nil {
		return fmt.Errorf("failed to open zip file %s: %w", zipFilePath, err)
	}
	defer reader.Close()

	want := filepath.ToSlash(entryName)
	for _, f := range reader.File {
		if f.Name == want {
			return extractEntry(f, target)
		}
	}
	return fmt.Errorf("archive %s has no entry %s", zipFilePath, want)
}
