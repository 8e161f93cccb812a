package models

import (
	"fmt"
	"time"

	"golang.org/x/oauth2"
)

var _ Model = (*Session)(nil)

// Session is a signed-in client and the Spotify token it acts with.
type Session struct {
	id           string
	accessToken  string
	refreshToken string
	tokenType    string
	expiry       time.Time
	createdAt    time.Time
	updatedAt    time.Time
	deletedAt    *time.Time
}

// NewSession creates an unsaved session holding token.
func NewSession(token *oauth2.Token) *Session {
	now := time.Now().UTC()
	s := &Session{createdAt: now, updatedAt: now}
	s.SetToken(token)
	return s
}

func (s *Session) ID() string                { return s.id }
func (s *Session) CreatedAt() time.Time      { return s.createdAt }
func (s *Session) UpdatedAt() time.Time      { return s.updatedAt }
func (s *Session) DeletedAt() *time.Time     { return s.deletedAt }
func (s *Session) AccessToken() string       { return s.accessToken }
func (s *Session) RefreshToken() string      { return s.refreshToken }
func (s *Session) TokenType() string         { return s.tokenType }
func (s *Session) Expiry() time.Time         { return s.expiry }
func (s *Session) SetID(id string)           { s.id = id }
func (s *Session) SetCreatedAt(t time.Time)  { s.createdAt = t }
func (s *Session) SetUpdatedAt(t time.Time)  { s.updatedAt = t }
func (s *Session) SetDeletedAt(t *time.Time) { s.deletedAt = t }

// Token returns the session's credentials as an [oauth2.Token].
func (s *Session) Token() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  s.accessToken,
		RefreshToken: s.refreshToken,
		TokenType:    s.tokenType,
		Expiry:       s.expiry,
	}
}

// SetToken replaces the stored credentials. A refreshed token without a refresh token keeps the old one.
func (s *Session) SetToken(token *oauth2.Token) {
	if token == nil {
		return
	}
	s.accessToken = token.AccessToken
	if token.RefreshToken != "" {
		s.refreshToken = token.RefreshToken
	}
	s.tokenType = token.TokenType
	if s.tokenType == "" {
		s.tokenType = "Bearer"
	}
	s.expiry = token.Expiry
}

// Validate requires an access token.
func (s *Session) Validate() error {
	if s.accessToken == "" {
		return fmt.Errorf("session access token is required")
	}
	return nil
}
