package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	response "proassignment/internal/adapter/http/dto/response"
	"proassignment/internal/adapter/http/handlers/mocks"
	"proassignment/internal/domain/entities"
	"proassignment/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func TestAssignmentHandler_Create(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("unauthenticated", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIAssignmentUseCase(ctrl)
		h := NewAssignmentHandler(uc)

		r := gin.New()
		r.POST("/v1/assignments", h.Create)

		w := serve(r, multipartRequest(t, "/v1/assignments", map[string]string{"title": "Essay"}, nil))
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("missing title", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIAssignmentUseCase(ctrl)
		h := NewAssignmentHandler(uc)

		r := gin.New()
		r.POST("/v1/assignments", as(clientViewer), h.Create)

		w := serve(r, multipartRequest(t, "/v1/assignments", nil, map[string][]string{"files": {"brief.pdf"}}))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("bad deadline", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIAssignmentUseCase(ctrl)
		h := NewAssignmentHandler(uc)

		r := gin.New()
		r.POST("/v1/assignments", as(clientViewer), h.Create)

		w := serve(r, multipartRequest(t, "/v1/assignments", map[string]string{"title": "Essay", "deadline": "soon"}, map[string][]string{"files": {"brief.pdf"}}))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("success passes files and projects for the client", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIAssignmentUseCase(ctrl)
		h := NewAssignmentHandler(uc)

		r := gin.New()
		r.POST("/v1/assignments", as(clientViewer), h.Create)

		uc.EXPECT().Create(gomock.Any(), clientViewer, gomock.Any()).DoAndReturn(
			func(_ any, _ entities.Viewer, in usecase.CreateAssignmentInput) (entities.Assignment, error) {
				if in.Title != "Essay" || len(in.Files) != 2 {
					t.Fatalf("unexpected input: %+v", in)
				}
				if in.Deadline == nil || in.Deadline.Day() != 1 {
					t.Fatalf("deadline not parsed: %v", in.Deadline)
				}
				body, _ := io.ReadAll(in.Files[0].Content)
				if !strings.HasPrefix(string(body), "content of ") {
					t.Fatalf("unexpected file content: %q", body)
				}
				return entities.Assignment{ID: "a1", StudentID: "c1", Title: "Essay", Status: entities.StatusNew, WriterPrice: 50}, nil
			})

		w := serve(r, multipartRequest(t, "/v1/assignments",
			map[string]string{"title": "Essay", "deadline": "2026-05-01"},
			map[string][]string{"files": {"brief.pdf", "notes.docx"}}))
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}
		if strings.Contains(w.Body.String(), "writer_price") {
			t.Fatalf("client response leaked writer price: %s", w.Body.String())
		}
	})

	t.Run("missing files mapped", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIAssignmentUseCase(ctrl)
		h := NewAssignmentHandler(uc)

		r := gin.New()
		r.POST("/v1/assignments", as(clientViewer), h.Create)

		uc.EXPECT().Create(gomock.Any(), clientViewer, gomock.Any()).Return(entities.Assignment{}, usecase.ErrMissingFiles)

		w := serve(r, multipartRequest(t, "/v1/assignments", map[string]string{"title": "Essay"}, nil))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}

func TestAssignmentHandler_TransitionErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"invalid transition", usecase.ErrInvalidTransition, http.StatusBadRequest},
		{"wrapped invalid transition", errors.Join(errors.New("conditional write lost"), usecase.ErrInvalidTransition), http.StatusBadRequest},
		{"forbidden", usecase.ErrForbidden, http.StatusForbidden},
		{"not found", usecase.ErrAssignmentNotFound, http.StatusNotFound},
		{"ledger conflict", usecase.ErrLedgerConflict, http.StatusConflict},
		{"unexpected", errors.New("dynamo down"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			uc := mocks.NewMockIAssignmentUseCase(ctrl)
			h := NewAssignmentHandler(uc)

			r := gin.New()
			r.PATCH("/v1/assignments/:id/accept-price", as(clientViewer), h.AcceptPrice)

			uc.EXPECT().AcceptPrice(gomock.Any(), clientViewer, "a1").Return(entities.Assignment{}, tc.err)

			w := serve(r, jsonRequest(http.MethodPatch, "/v1/assignments/a1/accept-price", ""))
			if w.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, w.Code)
			}
			var body map[string]any
			_ = json.Unmarshal(w.Body.Bytes(), &body)
			if body["code"] == nil || body["message"] == nil {
				t.Fatalf("unexpected error body: %s", w.Body.String())
			}
		})
	}
}

func TestAssignmentHandler_SetPrice(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("non-positive price rejected before the use case", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIAssignmentUseCase(ctrl)
		h := NewAssignmentHandler(uc)

		r := gin.New()
		r.PATCH("/v1/assignments/:id/price", as(adminViewer), h.SetPrice)

		w := serve(r, jsonRequest(http.MethodPatch, "/v1/assignments/a1/price", `{"client_price":0}`))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("admin sees both prices", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIAssignmentUseCase(ctrl)
		h := NewAssignmentHandler(uc)

		r := gin.New()
		r.PATCH("/v1/assignments/:id/price", as(adminViewer), h.SetPrice)

		uc.EXPECT().SetClientPrice(gomock.Any(), adminViewer, "a1", 120.0).
			Return(entities.Assignment{ID: "a1", ClientPrice: 120, WriterPrice: 0, Status: entities.StatusPriceSet}, nil)

		w := serve(r, jsonRequest(http.MethodPatch, "/v1/assignments/a1/price", `{"client_price":120}`))
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["client_price"] != 120.0 || body["writer_price"] != 0.0 || body["status"] != "Price Set" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}

func TestAssignmentHandler_AssignWriter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIAssignmentUseCase(ctrl)
	h := NewAssignmentHandler(uc)

	r := gin.New()
	r.PATCH("/v1/assignments/:id/assign", as(adminViewer), h.AssignWriter)

	uc.EXPECT().AssignWriter(gomock.Any(), adminViewer, "a1", gomock.Any()).DoAndReturn(
		func(_ any, _ entities.Viewer, _ string, in usecase.AssignWriterInput) (entities.Assignment, error) {
			if in.WriterID != "w1" || in.WriterPrice != 80 || in.ClientPrice == nil || *in.ClientPrice != 150 {
				t.Fatalf("unexpected input: %+v", in)
			}
			return entities.Assignment{ID: "a1", WriterID: "w1", Status: entities.StatusInProgress}, nil
		})

	w := serve(r, jsonRequest(http.MethodPatch, "/v1/assignments/a1/assign", `{"writer_id":"w1","writer_price":80,"client_price":150}`))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	w = serve(r, jsonRequest(http.MethodPatch, "/v1/assignments/a1/assign", `{"writer_id":"w1","writer_price":0}`))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestAssignmentHandler_UpdateProgress(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIAssignmentUseCase(ctrl)
	h := NewAssignmentHandler(uc)

	r := gin.New()
	r.PATCH("/v1/assignments/:id/progress", as(writerViewer), h.UpdateProgress)

	uc.EXPECT().UpdateProgress(gomock.Any(), writerViewer, "a1", 0).
		Return(entities.Assignment{ID: "a1", Status: entities.StatusInProgress}, nil)

	if w := serve(r, jsonRequest(http.MethodPatch, "/v1/assignments/a1/progress", `{"progress":0}`)); w.Code != http.StatusOK {
		t.Fatalf("expected 200 for zero progress, got %d", w.Code)
	}
	if w := serve(r, jsonRequest(http.MethodPatch, "/v1/assignments/a1/progress", `{"progress":100}`)); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for 100, got %d", w.Code)
	}
	if w := serve(r, jsonRequest(http.MethodPatch, "/v1/assignments/a1/progress", `{}`)); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing progress, got %d", w.Code)
	}
}

func TestAssignmentHandler_UploadPaymentProof(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("missing file", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIAssignmentUseCase(ctrl)
		h := NewAssignmentHandler(uc)

		r := gin.New()
		r.POST("/v1/assignments/:id/payment-proof", as(clientViewer), h.UploadPaymentProof)

		w := serve(r, multipartRequest(t, "/v1/assignments/a1/payment-proof", nil, nil))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("too large", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIAssignmentUseCase(ctrl)
		h := NewAssignmentHandler(uc)

		r := gin.New()
		r.POST("/v1/assignments/:id/payment-proof", as(clientViewer), h.UploadPaymentProof)

		uc.EXPECT().UploadPaymentProof(gomock.Any(), clientViewer, "a1", gomock.Any()).Return(entities.Assignment{}, usecase.ErrFileTooLarge)

		w := serve(r, multipartRequest(t, "/v1/assignments/a1/payment-proof", nil, map[string][]string{"file": {"receipt.png"}}))
		if w.Code != http.StatusRequestEntityTooLarge {
			t.Fatalf("expected 413, got %d", w.Code)
		}
	})
}

func TestAssignmentHandler_DegradedResponse(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIAssignmentUseCase(ctrl)
	h := NewAssignmentHandler(uc)
	h.present = func(entities.Assignment, entities.Viewer) response.AssignmentResponse {
		panic("broken projection")
	}

	r := gin.New()
	r.PATCH("/v1/assignments/:id/approve", as(adminViewer), h.ApproveWork)

	uc.EXPECT().ApproveWork(gomock.Any(), adminViewer, "a1").
		Return(entities.Assignment{ID: "a1", Status: entities.StatusAdminApproved}, nil)

	w := serve(r, jsonRequest(http.MethodPatch, "/v1/assignments/a1/approve", ""))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body["partial"] != true || body["id"] != "a1" || body["status"] != "Admin Approved" {
		t.Fatalf("unexpected partial body: %s", w.Body.String())
	}
}

func TestAssignmentHandler_List(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIAssignmentUseCase(ctrl)
	h := NewAssignmentHandler(uc)

	r := gin.New()
	r.GET("/v1/assignments", as(writerViewer), h.List)

	uc.EXPECT().List(gomock.Any(), writerViewer, entities.StatusInProgress).
		Return([]entities.Assignment{{ID: "a1", ClientPrice: 200, WriterPrice: 80}}, nil)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/v1/assignments?status=In%20Progress", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body []map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if len(body) != 1 || body[0]["writer_price"] != 80.0 {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
	if _, leaked := body[0]["client_price"]; leaked {
		t.Fatalf("writer response leaked client price")
	}

	uc.EXPECT().List(gomock.Any(), writerViewer, entities.AssignmentStatus("Bogus")).Return(nil, usecase.ErrInvalidStatusFilter)
	if w := serve(r, httptest.NewRequest(http.MethodGet, "/v1/assignments?status=Bogus", nil)); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestAssignmentHandler_DownloadFile(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("bad index", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIAssignmentUseCase(ctrl)
		h := NewAssignmentHandler(uc)

		r := gin.New()
		r.GET("/v1/assignments/:id/files/:set/:index", as(clientViewer), h.DownloadFile)

		w := serve(r, httptest.NewRequest(http.MethodGet, "/v1/assignments/a1/files/original/x", nil))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIAssignmentUseCase(ctrl)
		h := NewAssignmentHandler(uc)

		r := gin.New()
		r.GET("/v1/assignments/:id/files/:set/:index", as(clientViewer), h.DownloadFile)

		uc.EXPECT().OpenFile(gomock.Any(), clientViewer, "a1", "completed", 3).Return(entities.FileRef{}, nil, int64(0), usecase.ErrFileNotFound)

		w := serve(r, httptest.NewRequest(http.MethodGet, "/v1/assignments/a1/files/completed/3", nil))
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("streams content", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIAssignmentUseCase(ctrl)
		h := NewAssignmentHandler(uc)

		r := gin.New()
		r.GET("/v1/assignments/:id/files/:set/:index", as(clientViewer), h.DownloadFile)

		ref := entities.FileRef{Name: "brief.pdf", ContentType: "application/pdf", UploadedAt: time.Now()}
		uc.EXPECT().OpenFile(gomock.Any(), clientViewer, "a1", "original", 0).
			Return(ref, io.NopCloser(strings.NewReader("%PDF")), int64(4), nil)

		w := serve(r, httptest.NewRequest(http.MethodGet, "/v1/assignments/a1/files/original/0", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if w.Body.String() != "%PDF" || w.Header().Get("Content-Type") != "application/pdf" {
			t.Fatalf("unexpected download: %q %q", w.Body.String(), w.Header().Get("Content-Type"))
		}
		if !strings.Contains(w.Header().Get("Content-Disposition"), "brief.pdf") {
			t.Fatalf("missing filename: %q", w.Header().Get("Content-Disposition"))
		}
	})
}
