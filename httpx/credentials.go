package httpx

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/oauth"
	"golang.org/x/crypto/bcrypt"

	"github.com/deadbrock/avalia-o/config"
)

// NewBearerServer builds the OAuth bearer server that issues and refreshes
// admin tokens. Credentials come from configuration; the client-side
// credential list of the old app is not an access-control boundary and was
// replaced by server-enforced tokens.
func NewBearerServer(cfg config.Config) (*oauth.BearerServer, error) {
	verifier, err := newCredentialsVerifier(cfg)
	if err != nil {
		return nil, err
	}
	return oauth.NewBearerServer(cfg.TokenSecret, cfg.TokenTTL, verifier, nil), nil
}

type refreshRecord struct {
	refreshTokenID string
	expiration     time.Time
}

type credentialsVerifier struct {
	adminEmail string
	adminHash  []byte

	mu     sync.Mutex
	tokens map[string]refreshRecord // token id -> pending refresh
}

func newCredentialsVerifier(cfg config.Config) (*credentialsVerifier, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &credentialsVerifier{
		adminEmail: cfg.AdminEmail,
		adminHash:  hash,
		tokens:     make(map[string]refreshRecord),
	}, nil
}

func (cs *credentialsVerifier) ValidateUser(username, password, scope string, r *http.Request) error {
	if username != cs.adminEmail {
		// burn a comparison anyway to keep timing flat
		bcrypt.CompareHashAndPassword(cs.adminHash, []byte(password))
		return errors.New("unknown user")
	}
	return bcrypt.CompareHashAndPassword(cs.adminHash, []byte(password))
}

func (cs *credentialsVerifier) StoreTokenID(tokenType oauth.TokenType, credential, tokenID, refreshTokenID string) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cs.tokens[credential+":"+tokenID] = refreshRecord{
		refreshTokenID: refreshTokenID,
		expiration:     time.Now().Add(8760 * time.Hour),
	}
	return nil
}

func (cs *credentialsVerifier) ValidateTokenID(tokenType oauth.TokenType, credential, tokenID, refreshTokenID string) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	key := credential + ":" + tokenID
	rec, ok := cs.tokens[key]
	if !ok || rec.refreshTokenID != refreshTokenID {
		return errors.New("could not refresh")
	}
	delete(cs.tokens, key)

	if rec.expiration.Before(time.Now()) {
		return errors.New("could not refresh")
	}
	return nil
}

func (cs *credentialsVerifier) AddClaims(tokenType oauth.TokenType, credential, tokenID, scope string, r *http.Request) (map[string]string, error) {
	return map[string]string{"roles": "admin"}, nil
}

func (cs *credentialsVerifier) AddProperties(tokenType oauth.TokenType, credential, tokenID, scope string, r *http.Request) (map[string]string, error) {
	return map[string]string{}, nil
}

func (cs *credentialsVerifier) ValidateClient(clientID, clientSecret, scope string, r *http.Request) error {
	return errors.New("not supported")
}
