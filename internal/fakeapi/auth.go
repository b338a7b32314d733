package fakeapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Apurer/go-water-storefront/internal/clients/http/storefront"
	sharederrors "github.com/Apurer/go-water-storefront/internal/shared/errors"
)

var validate = validator.New()

// validEmail applies the same "email" rule gin's binding tags use.
func validEmail(email string) bool {
	return validate.Var(email, "required,email") == nil
}

const (
	minPasswordLength = 6
	userIDKey         = "fakeapi.userID"
)

var (
	errBadToken     = errors.New("invalid bearer token")
	errUnknownEmail = errors.New("email not registered")
)

func mapAuthError(err error) (sharederrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, errBadToken):
		return sharederrors.ErrUnauthorized.WithDetail("Invalid or expired token"), true
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword), errors.Is(err, errUnknownEmail):
		return sharederrors.ErrUnauthorized.WithDetail("Invalid credentials"), true
	}
	return sharederrors.ProblemDetail{}, false
}

// AddUser registers an account directly and returns its profile.
func (s *Server) AddUser(name, email, password string) (storefront.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return storefront.User{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.ToLower(strings.TrimSpace(email))
	if _, exists := s.byEmail[key]; exists {
		return storefront.User{}, sharederrors.ErrConflict.WithDetail("Email already registered")
	}
	user := storefront.User{ID: uuid.NewString(), Name: strings.TrimSpace(name), Email: key, Role: "customer"}
	s.accounts[user.ID] = &account{user: user, hash: hash}
	s.byEmail[key] = user.ID
	return user, nil
}

// IssueToken signs a bearer token for an existing user id.
func (s *Server) IssueToken(userID string) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *Server) parseToken(raw string) (string, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(raw, &claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || claims.Subject == "" {
		return "", errBadToken
	}
	return claims.Subject, nil
}

func (s *Server) requireAuth(c *gin.Context) {
	header := c.GetHeader("Authorization")
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(raw) == "" {
		s.responder.Abort(c, sharederrors.ErrUnauthorized.WithDetail("Missing bearer token"))
		return
	}
	userID, err := s.parseToken(strings.TrimSpace(raw))
	if err != nil {
		problem, _ := mapAuthError(err)
		s.responder.Abort(c, problem)
		return
	}
	s.mu.Lock()
	_, exists := s.accounts[userID]
	s.mu.Unlock()
	if !exists {
		s.responder.Abort(c, sharederrors.ErrUnauthorized.WithDetail("Account no longer exists"))
		return
	}
	c.Set(userIDKey, userID)
	c.Next()
}

func currentUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

func (s *Server) login(c *gin.Context) {
	var creds storefront.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		s.responder.Respond(c, sharederrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	s.mu.Lock()
	acct := s.accounts[s.byEmail[strings.ToLower(strings.TrimSpace(creds.Email))]]
	s.mu.Unlock()
	if acct == nil {
		s.responder.RespondError(c, errUnknownEmail)
		return
	}
	if err := bcrypt.CompareHashAndPassword(acct.hash, []byte(creds.Password)); err != nil {
		s.responder.RespondError(c, err)
		return
	}
	s.respondGrant(c, http.StatusOK, acct.user)
}

func (s *Server) register(c *gin.Context) {
	var reg storefront.Registration
	if err := c.ShouldBindJSON(&reg); err != nil {
		s.responder.Respond(c, sharederrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	problem := sharederrors.ErrValidation
	invalid := false
	if len(strings.TrimSpace(reg.Name)) < 2 {
		problem, invalid = problem.WithField("name", "must be at least 2 characters"), true
	}
	if !validEmail(reg.Email) {
		problem, invalid = problem.WithField("email", "must be a valid email"), true
	}
	if len(reg.Password) < minPasswordLength {
		problem, invalid = problem.WithField("password", "must be at least 6 characters"), true
	}
	if invalid {
		s.responder.Respond(c, problem.WithDetail("Please check the highlighted fields"))
		return
	}
	user, err := s.AddUser(reg.Name, reg.Email, reg.Password)
	if err != nil {
		s.responder.RespondError(c, err)
		return
	}
	s.mu.Lock()
	acct := s.accounts[user.ID]
	acct.user.Phone = strings.TrimSpace(reg.Phone)
	acct.user.CNIC = strings.TrimSpace(reg.CNIC)
	user = acct.user
	s.mu.Unlock()
	s.respondGrant(c, http.StatusCreated, user)
}

func (s *Server) respondGrant(c *gin.Context, status int, user storefront.User) {
	token, err := s.IssueToken(user.ID)
	if err != nil {
		s.responder.RespondError(c, err)
		return
	}
	c.JSON(status, storefront.AuthResponse{Token: token, User: &user})
}

func (s *Server) me(c *gin.Context) {
	s.mu.Lock()
	user := s.accounts[currentUserID(c)].user
	s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (s *Server) updateMe(c *gin.Context) {
	var patch storefront.ProfilePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		s.responder.Respond(c, sharederrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	if patch.Name != nil && len(strings.TrimSpace(*patch.Name)) < 2 {
		s.responder.Respond(c, sharederrors.ErrValidation.WithField("name", "must be at least 2 characters").WithDetail("Name is too short"))
		return
	}
	s.mu.Lock()
	acct := s.accounts[currentUserID(c)]
	applyPatch(&acct.user, patch)
	user := acct.user
	s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func applyPatch(user *storefront.User, patch storefront.ProfilePatch) {
	if patch.Name != nil {
		user.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Phone != nil {
		user.Phone = *patch.Phone
	}
	if patch.Address != nil {
		user.Address = *patch.Address
	}
	if patch.Avatar != nil {
		user.Avatar = *patch.Avatar
	}
	if patch.PushToken != nil {
		user.PushToken = *patch.PushToken
	}
}

func (s *Server) changePassword(c *gin.Context) {
	var change storefront.PasswordChange
	if err := c.ShouldBindJSON(&change); err != nil {
		s.responder.Respond(c, sharederrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	if len(change.NewPassword) < minPasswordLength {
		s.responder.Respond(c, sharederrors.ErrValidation.WithField("newPassword", "must be at least 6 characters").WithDetail("New password is too short"))
		return
	}
	s.mu.Lock()
	acct := s.accounts[currentUserID(c)]
	hash := acct.hash
	s.mu.Unlock()
	if err := bcrypt.CompareHashAndPassword(hash, []byte(change.CurrentPassword)); err != nil {
		s.responder.Respond(c, sharederrors.ErrBadRequest.WithDetail("Current password is incorrect"))
		return
	}
	if err := s.setPassword(acct, change.NewPassword); err != nil {
		s.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) setPassword(acct *account, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return err
	}
	s.mu.Lock()
	acct.hash = hash
	s.mu.Unlock()
	return nil
}

func (s *Server) requestReset(c *gin.Context) {
	var body struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		s.responder.Respond(c, sharederrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	if !validEmail(body.Email) {
		s.responder.Respond(c, sharederrors.ErrValidation.WithField("email", "must be a valid email").WithDetail("A valid email is required"))
		return
	}
	result := storefront.ResetRequestResult{Success: true, Message: "If the account exists, a reset link has been sent"}
	s.mu.Lock()
	if userID, ok := s.byEmail[strings.ToLower(strings.TrimSpace(body.Email))]; ok {
		token := uuid.NewString()
		s.resets[token] = userID
		if s.exposeReset {
			result.Token = token
		}
	}
	s.mu.Unlock()
	c.JSON(http.StatusOK, result)
}

func (s *Server) confirmReset(c *gin.Context) {
	var body struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		s.responder.Respond(c, sharederrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	if len(body.Password) < minPasswordLength {
		s.responder.Respond(c, sharederrors.ErrValidation.WithField("password", "must be at least 6 characters").WithDetail("Password is too short"))
		return
	}
	s.mu.Lock()
	userID, ok := s.resets[body.Token]
	if ok {
		delete(s.resets, body.Token)
	}
	acct := s.accounts[userID]
	s.mu.Unlock()
	if !ok || acct == nil {
		s.responder.Respond(c, sharederrors.ErrBadRequest.WithDetail("Invalid or expired token"))
		return
	}
	if err := s.setPassword(acct, body.Password); err != nil {
		s.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, storefront.ResetConfirmResult{Success: true, Message: "Password updated"})
}
