package auth_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"

	"github.com/mrsante/records-management/internal/auth"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Guards", func() {
	var (
		guards *auth.Guards
		next   http.Handler
	)

	BeforeEach(func() {
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		guards = auth.NewGuards(auth.NewEngine(10), logger)
		next = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
	})

	serve := func(mw func(http.Handler) http.Handler, principal *auth.Principal) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
		if principal != nil {
			req = req.WithContext(auth.ContextWithPrincipal(req.Context(), principal))
		}
		rec := httptest.NewRecorder()
		mw(next).ServeHTTP(rec, req)
		return rec
	}

	errorCode := func(rec *httptest.ResponseRecorder) string {
		var body struct {
			Error struct {
				Code string `json:"code"`
			} `json:"error"`
		}
		Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
		return body.Error.Code
	}

	Describe("RequireAdmin", func() {
		It("should reject an unauthenticated request", func() {
			rec := serve(guards.RequireAdmin(), nil)

			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
			Expect(errorCode(rec)).To(Equal("INVALID_TOKEN"))
		})

		It("should reject a non-admin below the admin grade", func() {
			medic := &auth.Principal{UserID: 2, GradeLevel: 5}
			rec := serve(guards.RequireAdmin(), medic)

			Expect(rec.Code).To(Equal(http.StatusForbidden))
			Expect(errorCode(rec)).To(Equal("ADMIN_REQUIRED"))
		})

		It("should pass a flagged admin through", func() {
			admin := &auth.Principal{UserID: 3, GradeLevel: 5, IsAdmin: true}
			rec := serve(guards.RequireAdmin(), admin)

			Expect(rec.Code).To(Equal(http.StatusOK))
		})

		It("should pass a grade at the admin level through", func() {
			chief := &auth.Principal{UserID: 1, GradeLevel: 10}
			rec := serve(guards.RequireAdmin(), chief)

			Expect(rec.Code).To(Equal(http.StatusOK))
		})

		It("should pass root through", func() {
			root := &auth.Principal{UserID: 9, GradeLevel: auth.RootGradeLevel}
			rec := serve(guards.RequireAdmin(), root)

			Expect(rec.Code).To(Equal(http.StatusOK))
		})
	})

	Describe("RequirePermission", func() {
		It("should reject an unauthenticated request", func() {
			rec := serve(guards.RequirePermission(auth.PermViewRoster), nil)

			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
			Expect(errorCode(rec)).To(Equal("INVALID_TOKEN"))
		})

		It("should reject a principal without the permission", func() {
			medic := &auth.Principal{UserID: 2, GradeLevel: 5, Permissions: map[string]bool{}}
			rec := serve(guards.RequirePermission(auth.PermViewRoster), medic)

			Expect(rec.Code).To(Equal(http.StatusForbidden))
			Expect(errorCode(rec)).To(Equal("MISSING_PERMISSION"))
		})

		It("should pass a permission holder through", func() {
			medic := &auth.Principal{UserID: 2, GradeLevel: 5, Permissions: map[string]bool{auth.PermViewRoster: true}}
			rec := serve(guards.RequirePermission(auth.PermViewRoster), medic)

			Expect(rec.Code).To(Equal(http.StatusOK))
		})

		It("should pass root through without the permission", func() {
			root := &auth.Principal{UserID: 9, GradeLevel: auth.RootGradeLevel, Permissions: map[string]bool{}}
			rec := serve(guards.RequirePermission(auth.PermViewRoster), root)

			Expect(rec.Code).To(Equal(http.StatusOK))
		})
	})
})
