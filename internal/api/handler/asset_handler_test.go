package handler

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/vogueline/agency-api/internal/core/domain"
	"github.com/vogueline/agency-api/internal/core/ports"
)

func multipartBody(t *testing.T, fields map[string]string, file []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if file != nil {
		fw, err := w.CreateFormFile("file", "look.png")
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := fw.Write(file); err != nil {
			t.Fatalf("write file: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func TestAssetHandler_Upload(t *testing.T) {
	payload := []byte("fake image bytes")
	stub := &stubAssetService{
		uploadFn: func(ctx context.Context, in ports.UploadInput) (*domain.AssetRef, error) {
			if in.OwnerID != modelSession.AccountID || in.Purpose != domain.PurposePortfolio || in.Filename != "look.png" {
				t.Fatalf("unexpected input %+v", in)
			}
			got, _ := io.ReadAll(in.File)
			if !bytes.Equal(got, payload) || in.Size != int64(len(payload)) {
				t.Fatalf("file content not forwarded")
			}
			return &domain.AssetRef{ID: "a1", URL: "https://cdn/portfolio/model-1/x.png", Purpose: in.Purpose}, nil
		},
	}
	h := NewAssetHandler(stub)

	body, ct := multipartBody(t, map[string]string{"type": "portfolio"}, payload)
	c, rec := newContext(http.MethodPost, "/api/upload", body, ct, &modelSession)
	if err := h.Upload(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte(`"url":"https://cdn/portfolio/model-1/x.png"`)) {
		t.Fatalf("url missing from response: %s", rec.Body.String())
	}
}

func TestAssetHandler_Upload_MissingFile(t *testing.T) {
	h := NewAssetHandler(&stubAssetService{})

	body, ct := multipartBody(t, map[string]string{"type": "avatar"}, nil)
	c, _ := newContext(http.MethodPost, "/api/upload", body, ct, &modelSession)

	var ve *domain.ValidationError
	if err := h.Upload(c); !errors.As(err, &ve) || ve.Field != "file" {
		t.Fatalf("expected file validation error, got %v", err)
	}
}

func TestAssetHandler_Upload_RequiresSession(t *testing.T) {
	h := NewAssetHandler(&stubAssetService{})

	body, ct := multipartBody(t, map[string]string{"type": "avatar"}, []byte("x"))
	c, _ := newContext(http.MethodPost, "/api/upload", body, ct, nil)
	if err := h.Upload(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestAssetHandler_List(t *testing.T) {
	stub := &stubAssetService{
		listFn: func(ctx context.Context, ownerID string, purpose domain.AssetPurpose) ([]domain.AssetRef, error) {
			if ownerID != clientSession.AccountID || purpose != domain.PurposeProductImage {
				t.Fatalf("unexpected args %s %s", ownerID, purpose)
			}
			return []domain.AssetRef{{ID: "a1"}}, nil
		},
	}
	h := NewAssetHandler(stub)

	c, rec := jsonContext(http.MethodGet, "/api/assets?purpose=product-image", "", &clientSession)
	if err := h.List(c); err != nil || rec.Code != http.StatusOK {
		t.Fatalf("err=%v code=%d", err, rec.Code)
	}

	c, _ = jsonContext(http.MethodGet, "/api/assets?purpose=banner", "", &clientSession)
	if err := h.List(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for unknown purpose, got %v", err)
	}
}
