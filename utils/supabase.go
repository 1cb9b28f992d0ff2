package utils

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	storage "github.com/supabase-community/storage-go"
)

const storageBucket = "study-materials"

// UploadPDFToSupabase uploads a study-material file to Supabase Storage under
// pdfs/<objectName>.<ext> and returns its public URL together with the object
// path (kept for building download URLs later). Declared as a variable so
// tests can stand in for the storage service.
var UploadPDFToSupabase = uploadPDFToSupabase

func uploadPDFToSupabase(fileHeader *multipart.FileHeader, objectName string) (string, string, error) {
	supabaseURL := os.Getenv("SUPABASE_URL")
	supabaseKey := os.Getenv("SUPABASE_KEY")

	storageClient := storage.NewClient(supabaseURL+"/storage/v1", supabaseKey, nil)

	file, err := fileHeader.Open()
	if err != nil {
		return "", "", err
	}
	defer file.Close()

	ext := filepath.Ext(fileHeader.Filename)
	objectPath := fmt.Sprintf("pdfs/%s%s", objectName, ext)

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		return "", "", err
	}

	contentType := fileHeader.Header.Get("Content-Type")
	options := storage.FileOptions{
		ContentType: &contentType,
	}

	if _, err := storageClient.UploadFile(storageBucket, objectPath, &buf, options); err != nil {
		return "", "", err
	}

	publicURL := fmt.Sprintf("%s/storage/v1/object/public/%s/%s", supabaseURL, storageBucket, objectPath)
	return publicURL, objectPath, nil
}

// PublicObjectURL rebuilds the public URL for a stored object path.
func PublicObjectURL(objectPath string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", os.Getenv("SUPABASE_URL"), storageBucket, objectPath)
}
