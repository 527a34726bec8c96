package controllers

import (
	"os"
	"path/filepath"

	"journal-submission-api/models"
	"journal-submission-api/services"
)

// Archive is the shared packager instance, provisioned by InitStorage.
var Archive *services.ArchiveService

// StorageRoot is the base directory for all stored files (UPLOAD_PATH env).
func StorageRoot() string {
	root := os.Getenv("UPLOAD_PATH")
	if root == "" {
		root = "./public"
	}
	return root
}

func articlesRoot() string {
	return filepath.Join(StorageRoot(), "articles")
}

func categoryDir(category models.FileCategory) string {
	return filepath.Join(articlesRoot(), category.Dir())
}

func profilePictureDir() string {
	return filepath.Join(StorageRoot(), "profile-pictures")
}

type storedFile struct {
	name     string
	category models.FileCategory
}

// discardStoredFiles removes uploads saved before a submission failed, so an
// aborted submission leaves nothing on disk.
func discardStoredFiles(files []storedFile) {
	for _, f := range files {
		_ = os.Remove(filepath.Join(categoryDir(f.category), f.name))
	}
}

// InitStorage provisions the upload directories and the archive packager.
func InitStorage() error {
	svc := services.NewArchiveService(articlesRoot(), services.DefaultArchiveGrace)

	dirs := []string{profilePictureDir(), svc.ArchiveDir()}
	for _, category := range models.AllCategories() {
		dirs = append(dirs, categoryDir(category))
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return err
		}
	}

	Archive = svc
	return nil
}
