// Package media stores dish images uploaded from the admin dish form and
// produces the thumbnail the menu cards use.
package media

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"sagra/utils"

	"github.com/disintegration/imaging"
	"github.com/julienschmidt/httprouter"
)

type Handlers struct {
	uploadDir string
}

func NewHandlers(uploadDir string) *Handlers {
	return &Handlers{uploadDir: uploadDir}
}

// UploadDishImage accepts a multipart "image" file, saves the original
// and a 300px-wide thumbnail, and returns the URIs for the dish form.
func (h *Handlers) UploadDishImage(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing image file")
		return
	}
	defer file.Close()

	if ct := header.Header.Get("Content-Type"); !utils.SupportedImageTypes[ct] {
		utils.RespondWithError(w, http.StatusBadRequest, "Unsupported image type: "+ct)
		return
	}

	img, err := imaging.Decode(file)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Could not decode image")
		return
	}

	if err := os.MkdirAll(filepath.Join(h.uploadDir, "thumb"), 0o755); err != nil {
		log.Println("upload dir error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to store image")
		return
	}

	name := utils.GenerateRandomString(12) + ".jpg"
	originalPath := filepath.Join(h.uploadDir, name)
	thumbnailPath := filepath.Join(h.uploadDir, "thumb", name)

	if err := imaging.Save(img, originalPath); err != nil {
		log.Println("image save error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to store image")
		return
	}
	thumbImg := imaging.Resize(img, 300, 0, imaging.Lanczos)
	if err := imaging.Save(thumbImg, thumbnailPath); err != nil {
		log.Println("thumbnail save error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to store thumbnail")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"image":     fmt.Sprintf("/static/uploads/%s", name),
		"thumbnail": fmt.Sprintf("/static/uploads/thumb/%s", name),
	})
}
