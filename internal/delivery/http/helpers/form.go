package helpers

import (
	"errors"
	"fmt"
	"net/http"

	"devevent/internal/domain"
)

// MaxUploadBytes bounds a whole create-event multipart request: the image
// limit plus room for the text fields.
const MaxUploadBytes = 6 << 20

// ParseCreateEventForm reads a multipart create-event submission. The
// returned cleanup closes the uploaded file and removes any temporary
// files; it is safe to call when err is non-nil.
func ParseCreateEventForm(w http.ResponseWriter, r *http.Request, maxBytes int64) (domain.CreateEventInput, func(), error) {
	noop := func() {}
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return domain.CreateEventInput{}, noop, fmt.Errorf("request body must be %dMB or smaller", maxBytes>>20)
		}
		return domain.CreateEventInput{}, noop, fmt.Errorf("invalid multipart form: %w", err)
	}
	cleanup := func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}

	in := domain.CreateEventInput{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Overview:    r.FormValue("overview"),
		Venue:       r.FormValue("venue"),
		Location:    r.FormValue("location"),
		Date:        r.FormValue("date"),
		Time:        r.FormValue("time"),
		Mode:        r.FormValue("mode"),
		Audience:    r.FormValue("audience"),
		Organizer:   r.FormValue("organizer"),
		Agenda:      r.FormValue("agenda"),
		Tags:        r.FormValue("tags"),
	}

	file, header, err := r.FormFile("image")
	switch {
	case errors.Is(err, http.ErrMissingFile):
		return in, cleanup, nil
	case err != nil:
		cleanup()
		return domain.CreateEventInput{}, noop, fmt.Errorf("read image: %w", err)
	}
	in.Image = &domain.ImageUpload{Filename: header.Filename, Size: header.Size, Content: file}
	return in, func() {
		_ = file.Close()
		cleanup()
	}, nil
}
