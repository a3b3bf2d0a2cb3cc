package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"gallery-backend/config"
	"gallery-backend/database"
	"gallery-backend/internal/domain/session"
	"gallery-backend/internal/domain/users"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	googleIssuer     = "https://accounts.google.com"
	stateCookie      = "gallery_oauth_state"
	stateCookieTTL   = 300
	providerGoogle   = "google"
	googleDeniedText = "google sign-in failed"
)

var errGoogleLinked = errors.New("email already linked to another google account")

// googleAccount is what the gallery keeps from a verified Google id_token.
type googleAccount struct {
	Subject  string `json:"sub"`
	Email    string `json:"email"`
	Verified bool   `json:"email_verified"`
	Name     string `json:"name"`
	Picture  string `json:"picture"`
}

// resolveGoogleCode trades an authorization code for a verified account.
// Tests replace it to avoid talking to Google.
var resolveGoogleCode = func(ctx context.Context, code string) (googleAccount, error) {
	tok, err := googleOAuth().Exchange(ctx, code)
	if err != nil {
		return googleAccount{}, fmt.Errorf("exchange code: %w", err)
	}
	raw, _ := tok.Extra("id_token").(string)
	if raw == "" {
		return googleAccount{}, errors.New("no id_token in token response")
	}

	provider, err := oidc.NewProvider(ctx, googleIssuer)
	if err != nil {
		return googleAccount{}, fmt.Errorf("oidc discovery: %w", err)
	}
	idToken, err := provider.Verifier(&oidc.Config{ClientID: config.GOOGLE_CLIENT_ID}).Verify(ctx, raw)
	if err != nil {
		return googleAccount{}, fmt.Errorf("verify id_token: %w", err)
	}

	var acct googleAccount
	if err := idToken.Claims(&acct); err != nil {
		return googleAccount{}, fmt.Errorf("decode claims: %w", err)
	}
	return acct, nil
}

func googleOAuth() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     config.GOOGLE_CLIENT_ID,
		ClientSecret: config.GOOGLE_CLIENT_SECRET,
		RedirectURL:  config.GOOGLE_REDIRECT_URL,
		Scopes:       []string{oidc.ScopeOpenID, "email", "profile"},
		Endpoint:     google.Endpoint,
	}
}

func googleEnabled(c *gin.Context) bool {
	if config.GOOGLE_CLIENT_ID == "" || config.GOOGLE_CLIENT_SECRET == "" || config.GOOGLE_REDIRECT_URL == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "google sign-in not configured"})
		return false
	}
	return true
}

// GET /auth/google
func GoogleStart(c *gin.Context) {
	if !googleEnabled(c) {
		return
	}
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start sign-in"})
		return
	}
	state := hex.EncodeToString(buf)

	c.SetCookie(stateCookie, state, stateCookieTTL, "/", "", config.IsProduction(), true)
	c.Redirect(http.StatusFound, googleOAuth().AuthCodeURL(state, oauth2.AccessTypeOnline))
}

// GET /auth/google/callback
// Signs a buyer in with Google. New accounts are created with the buyer
// role; artists and admins are never minted here.
func GoogleCallback(c *gin.Context) {
	if !googleEnabled(c) {
		return
	}
	code, state := c.Query("code"), c.Query("state")
	saved, err := c.Cookie(stateCookie)
	if code == "" || state == "" || err != nil || saved != state {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid oauth state"})
		return
	}
	c.SetCookie(stateCookie, "", -1, "/", "", config.IsProduction(), true)

	acct, err := resolveGoogleCode(c.Request.Context(), code)
	if err != nil {
		fmt.Println("❌ Google sign-in error:", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": googleDeniedText})
		return
	}
	if acct.Subject == "" || acct.Email == "" || !acct.Verified {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "google account has no verified email"})
		return
	}

	user, err := userForGoogle(acct)
	if errors.Is(err, errGoogleLinked) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		fmt.Println("❌ Google account link error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to sign in"})
		return
	}

	token, err := session.Issue([]byte(config.JWT_SECRET), user, session.DefaultTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create token"})
		return
	}
	if config.GOOGLE_FRONTEND_REDIRECT == "" {
		c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
		return
	}
	c.Redirect(http.StatusFound, config.GOOGLE_FRONTEND_REDIRECT+"?token="+token)
}

// userForGoogle returns the user already linked to the Google subject,
// links an existing account with the same email, or registers a new buyer.
func userForGoogle(acct googleAccount) (users.User, error) {
	var user users.User
	if err := database.DB.Where("google_sub = ?", acct.Subject).First(&user).Error; err == nil {
		return user, nil
	}

	email := strings.ToLower(strings.TrimSpace(acct.Email))
	sub := acct.Subject
	if err := database.DB.Where("LOWER(email) = ?", email).First(&user).Error; err == nil {
		if user.GoogleSub != nil {
			return users.User{}, errGoogleLinked
		}
		user.GoogleSub = &sub
		user.IsVerified = true
		err := database.DB.Model(&user).Updates(map[string]interface{}{
			"google_sub":  sub,
			"is_verified": true,
		}).Error
		return user, err
	}

	name := acct.Name
	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}
	user = users.User{
		Name:            name,
		Email:           email,
		AuthProvider:    providerGoogle,
		GoogleSub:       &sub,
		Role:            users.RoleUser,
		IsVerified:      true,
		ProfileImageURL: acct.Picture,
	}
	return user, database.DB.Create(&user).Error
}
