package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/Abdallah-SE/ecommerce-api/auth"
	"github.com/Abdallah-SE/ecommerce-api/errors"
	"github.com/Abdallah-SE/ecommerce-api/model"
	"github.com/Abdallah-SE/ecommerce-api/respond"
	"github.com/Abdallah-SE/ecommerce-api/validate"
)

// credentials is the login request body.
type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginResult is the login response payload.
type loginResult struct {
	Token     string       `json:"token"`
	ExpiresAt string       `json:"expires_at"`
	Admin     *model.Admin `json:"admin"`
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) error {
	var creds credentials
	if err := decodeJSON(r, &creds); err != nil {
		return err
	}
	if err := validate.Credentials(creds.Email, creds.Password); err != nil {
		return err
	}

	admin, err := auth.Authenticate(r.Context(), s.accounts, creds.Email, creds.Password)
	if err != nil {
		return err
	}

	token := s.tokens.Issue(admin.ID)
	env, status := respond.OK(loginResult{
		Token:     token.Value,
		ExpiresAt: token.ExpiresAt.UTC().Format(time.RFC3339),
		Admin:     admin,
	}, "Login successful.")
	respond.Write(w, env, status)
	return nil
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) error {
	s.tokens.Revoke(tokenFromContext(r.Context()))
	env, status := respond.OK(nil, "Logged out successfully.")
	respond.Write(w, env, status)
	return nil
}

func (s *Server) dashboard(w http.ResponseWriter, r *http.Request) error {
	// The dashboard shows aggregate counts only; a single-row page carries
	// the total without loading the whole table.
	page, err := s.admins.PaginateAdmins(r.Context(), 1, 1)
	if err != nil {
		return err
	}

	adminID, _ := AdminID(r.Context())
	env, status := respond.OK(map[string]any{
		"admin_id":     adminID,
		"total_admins": page.Total(),
	}, "Dashboard data retrieved successfully.")
	respond.Write(w, env, status)
	return nil
}

func (s *Server) indexAdmins(w http.ResponseWriter, r *http.Request) error {
	perPage := queryInt(r, "per_page")
	page := queryInt(r, "page")

	result, err := s.admins.PaginateAdmins(r.Context(), perPage, page)
	if err != nil {
		return err
	}

	env, status := respond.Success(result, "Admins retrieved successfully.", http.StatusOK, nil)
	respond.Write(w, env, status)
	return nil
}

func (s *Server) storeAdmin(w http.ResponseWriter, r *http.Request) error {
	var in model.AdminInput
	if err := decodeJSON(r, &in); err != nil {
		return err
	}
	if err := validate.StoreAdmin(in); err != nil {
		return err
	}

	admin, err := s.admins.CreateAdmin(r.Context(), in)
	if err != nil {
		return err
	}

	env, status := respond.Success(admin, "Admin created successfully.", http.StatusCreated, nil)
	respond.Write(w, env, status)
	return nil
}

func (s *Server) showAdmin(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}

	admin, err := s.admins.FindAdmin(r.Context(), id)
	if err != nil {
		return err
	}

	env, status := respond.OK(admin, "Admin retrieved successfully.")
	respond.Write(w, env, status)
	return nil
}

func (s *Server) updateAdmin(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}

	var in model.AdminInput
	if err := decodeJSON(r, &in); err != nil {
		return err
	}
	if err := validate.UpdateAdmin(in); err != nil {
		return err
	}

	admin, err := s.admins.UpdateAdmin(r.Context(), id, in)
	if err != nil {
		return err
	}

	env, status := respond.OK(admin, "Admin updated successfully.")
	respond.Write(w, env, status)
	return nil
}

func (s *Server) destroyAdmin(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}

	if err := s.admins.DeleteAdmin(r.Context(), id); err != nil {
		return err
	}

	env, status := respond.OK(nil, "Admin deleted successfully.")
	respond.Write(w, env, status)
	return nil
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	st := s.health.Check(r.Context())

	code := http.StatusOK
	if !st.Healthy {
		code = http.StatusServiceUnavailable
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(st)
}

// decodeJSON reads the request body into dst. Malformed bodies become a
// bad-request error rather than propagating decoder internals.
func decodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.BadRequest()
	}
	return nil
}

// pathID parses the {id} path segment. A non-numeric segment behaves like a
// miss on the admin resource.
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.NotFound("Admin", 0)
	}
	return id, nil
}

// queryInt parses an integer query parameter, returning zero when absent or
// malformed so the service layer applies its defaults.
func queryInt(r *http.Request, key string) int {
	value, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return 0
	}
	return value
}
