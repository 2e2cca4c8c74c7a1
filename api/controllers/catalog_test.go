package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/internal/collections"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/internal/contact"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/internal/reviews"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/db/models"
	pkgerrors "github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/errors"
)

func TestCollectionsList(t *testing.T) {
	svc := stubCollections{listFn: func(context.Context) ([]models.Collection, error) {
		return []models.Collection{{ID: uuid.New(), Title: "Summer", Slug: "summer", Image: "img-1"}}, nil
	}}
	resp := httptest.NewRecorder()
	CollectionsList(svc, nil).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/collections", nil))

	var out struct {
		Data []collectionResponse `json:"data"`
	}
	decodeBody(t, resp, &out)
	if len(out.Data) != 1 || out.Data[0].Slug != "summer" {
		t.Fatalf("unexpected data %+v", out.Data)
	}
}

func TestCollectionBySlugNotFound(t *testing.T) {
	svc := stubCollections{slugFn: func(ctx context.Context, value string) (*models.Collection, error) {
		if value != "winter" {
			t.Fatalf("unexpected slug %s", value)
		}
		return nil, pkgerrors.NotFound(collections.MsgNotFound)
	}}
	req := withURLParam(httptest.NewRequest(http.MethodGet, "/", nil), "slug", "winter")
	resp := httptest.NewRecorder()
	CollectionBySlug(svc, nil).ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestAdminCollectionCreate(t *testing.T) {
	svc := stubCollections{createFn: func(ctx context.Context, input collections.CreateInput) (*models.Collection, error) {
		if input.Title != "Summer Sale" {
			t.Fatalf("unexpected input %+v", input)
		}
		return &models.Collection{ID: uuid.New(), Title: input.Title, Slug: "summer-sale", Image: input.Image}, nil
	}}
	body := `{"title":"Summer Sale","slug":"Summer Sale!","image":"img-1"}`
	resp := httptest.NewRecorder()
	AdminCollectionCreate(svc, nil).ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestAdminCollectionCreateDuplicate(t *testing.T) {
	svc := stubCollections{createFn: func(context.Context, collections.CreateInput) (*models.Collection, error) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, errors.New("dup"), collections.MsgDuplicateSlug)
	}}
	body := `{"title":"Summer","slug":"summer","image":"img-1"}`
	resp := httptest.NewRecorder()
	AdminCollectionCreate(svc, nil).ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", resp.Code)
	}
}

func TestAdminCollectionUpdateAndDelete(t *testing.T) {
	id := uuid.New()
	svc := stubCollections{
		updateFn: func(ctx context.Context, got uuid.UUID, patch collections.Patch) (*models.Collection, error) {
			if patch.Slug == nil || *patch.Slug != "new-name" {
				t.Fatalf("unexpected patch %+v", patch)
			}
			return &models.Collection{ID: got, Slug: *patch.Slug}, nil
		},
		deleteFn: func(ctx context.Context, got uuid.UUID) error {
			return pkgerrors.NotFound(collections.MsgNotFound)
		},
	}

	req := withURLParam(httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(`{"slug":"New Name"}`)), "collectionID", id.String())
	resp := httptest.NewRecorder()
	AdminCollectionUpdate(svc, nil).ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}

	req = withURLParam(httptest.NewRequest(http.MethodDelete, "/", nil), "collectionID", id.String())
	resp = httptest.NewRecorder()
	AdminCollectionDelete(svc, nil).ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestReviewSubmit(t *testing.T) {
	svc := stubReviews{submitFn: func(ctx context.Context, input reviews.SubmitInput) (*models.Review, error) {
		if input.Rating != 5 {
			t.Fatalf("unexpected input %+v", input)
		}
		return &models.Review{ID: uuid.New(), ProductID: input.ProductID, ReviewerEmail: input.ReviewerEmail, Rating: input.Rating}, nil
	}}
	body := `{"productId":"p1","reviewerName":"Sara","reviewerEmail":"sara@example.com","rating":5,"comment":"Lovely"}`
	resp := httptest.NewRecorder()
	ReviewSubmit(svc, nil).ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if strings.Contains(resp.Body.String(), "sara@example.com") {
		t.Fatalf("reviewer email leaked: %s", resp.Body.String())
	}
}

func TestProductReviews(t *testing.T) {
	svc := stubReviews{approvedFn: func(ctx context.Context, productID string) ([]models.Review, error) {
		if productID != "p1" {
			t.Fatalf("unexpected product %s", productID)
		}
		return []models.Review{{ID: uuid.New(), Approved: true}}, nil
	}}
	req := withURLParam(httptest.NewRequest(http.MethodGet, "/", nil), "productID", "p1")
	resp := httptest.NewRecorder()
	ProductReviews(svc, nil).ServeHTTP(resp, req)
	var out struct {
		Data []reviews.View `json:"data"`
	}
	decodeBody(t, resp, &out)
	if len(out.Data) != 1 || !out.Data[0].Approved {
		t.Fatalf("unexpected data %+v", out.Data)
	}
}

func TestAdminReviewsListFilter(t *testing.T) {
	svc := stubReviews{listFn: func(ctx context.Context, filter reviews.Filter) ([]models.Review, error) {
		if filter.Approved == nil || *filter.Approved {
			t.Fatalf("expected approved=false filter, got %+v", filter)
		}
		return []models.Review{{ID: uuid.New(), ReviewerEmail: "sara@example.com"}}, nil
	}}
	resp := httptest.NewRecorder()
	AdminReviewsList(svc, nil).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/?approved=false", nil))
	if !strings.Contains(resp.Body.String(), "sara@example.com") {
		t.Fatalf("expected reviewer email for admins: %s", resp.Body.String())
	}

	resp = httptest.NewRecorder()
	AdminReviewsList(svc, nil).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/?approved=maybe", nil))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestAdminReviewApprovalRequiresFlag(t *testing.T) {
	id := uuid.New()
	svc := stubReviews{approveFn: func(ctx context.Context, got uuid.UUID, approved bool) (*models.Review, error) {
		return &models.Review{ID: got, Approved: approved}, nil
	}}

	req := withURLParam(httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(`{}`)), "reviewID", id.String())
	resp := httptest.NewRecorder()
	AdminReviewApproval(svc, nil).ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}

	req = withURLParam(httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(`{"approved":true}`)), "reviewID", id.String())
	resp = httptest.NewRecorder()
	AdminReviewApproval(svc, nil).ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestContactSubmit(t *testing.T) {
	svc := stubContact{submitFn: func(ctx context.Context, input contact.Input) (*models.ContactMessage, error) {
		if input.Name != "Bilal" {
			t.Fatalf("unexpected input %+v", input)
		}
		return &models.ContactMessage{ID: uuid.New()}, nil
	}}
	body := `{"name":"Bilal","email":"bilal@example.com","phone":"03001234567","message":"Hello"}`
	resp := httptest.NewRecorder()
	ContactSubmit(svc, nil).ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if !strings.Contains(resp.Body.String(), contactAckMessage) {
		t.Fatalf("unexpected body %s", resp.Body.String())
	}
}
