package services

import (
	"fmt"
	"log"
	"strings"

	"github.com/authorizerdev/authorizer-go"
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/agenthub/internal/config"
	"github.com/localnerve/agenthub/internal/types"
	"github.com/localnerve/agenthub/internal/utils"
)

const bearerPrefix = "Bearer "

// tokenPreviewLen bounds how much of a credential ever reaches the logs.
const tokenPreviewLen = 16

// IdentityProvider is the identity boundary used by middleware and handlers.
// The production implementation delegates to Authorizer; tests substitute fakes.
type IdentityProvider interface {
	// Verify validates a bearer credential and returns the stable user id.
	Verify(authorization string) (string, error)
	// SignUp creates an account at the identity provider and returns its id.
	SignUp(email, password string) (string, error)
}

// IdentityVerifier validates bearer credentials against the Authorizer
// identity provider. Constructed once at startup and shared read-only
// across requests.
type IdentityVerifier struct {
	client *authorizer.AuthorizerClient
}

// NewIdentityVerifier pings the Authorizer service and creates the client.
func NewIdentityVerifier(cfg *config.Config) (*IdentityVerifier, error) {
	if err := utils.PingAuthorizer(cfg.AuthzURL); err != nil {
		return nil, fmt.Errorf("authorizer ping failed: %w", err)
	}

	client, err := authorizer.NewAuthorizerClient(cfg.AuthzClientID, cfg.AuthzURL, "", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create authorizer client: %w", err)
	}

	log.Printf("Authorizer client initialized: authorizerURL=%s, clientID=%s",
		cfg.AuthzURL, cfg.AuthzClientID)

	return &IdentityVerifier{client: client}, nil
}

// Verify validates an Authorization header value and returns the user id.
func (v *IdentityVerifier) Verify(authorization string) (string, error) {
	if !strings.HasPrefix(authorization, bearerPrefix) {
		return "", types.NewError(fiber.StatusUnauthorized,
			"Invalid authorization header format", types.ErrAuthMalformed)
	}

	token := strings.TrimPrefix(authorization, bearerPrefix)
	log.Printf("Verifying token: %s...", tokenPreview(token))

	res, err := v.client.ValidateJWTToken(&authorizer.ValidateJWTTokenInput{
		TokenType: "id_token",
		Token:     token,
	})
	if err != nil {
		return "", classifyVerifyError(err)
	}
	if res == nil || !res.IsValid {
		return "", types.NewError(fiber.StatusUnauthorized, "Invalid token", types.ErrAuthInvalid)
	}

	sub, _ := res.Claims["sub"].(string)
	if sub == "" {
		return "", types.NewError(fiber.StatusUnauthorized,
			"Token has no subject", types.ErrAuthUnknown)
	}

	return sub, nil
}

// SignUp creates the account at the identity provider and returns the new user id.
func (v *IdentityVerifier) SignUp(email, password string) (string, error) {
	roles := []string{"user"}
	rolesPtrs := make([]*string, len(roles))
	for i := range roles {
		rolesPtrs[i] = &roles[i]
	}

	res, err := v.client.SignUp(&authorizer.SignUpInput{
		Email:           &email,
		Password:        password,
		ConfirmPassword: password,
		Roles:           rolesPtrs,
	})
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "already") {
			return "", types.NewError(fiber.StatusBadRequest,
				"Email already exists", types.ErrValidationBadInput)
		}
		return "", types.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("Registration failed: %v", err), types.ErrValidationBadInput)
	}
	if res == nil || res.User == nil || res.User.ID == "" {
		return "", types.NewError(fiber.StatusInternalServerError,
			"Identity provider returned no user", types.ErrAuthUnknown)
	}

	return res.User.ID, nil
}

// classifyVerifyError maps provider failures onto the auth error taxonomy.
func classifyVerifyError(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "expired"):
		return types.NewError(fiber.StatusUnauthorized, "Token expired", types.ErrAuthExpired)
	case strings.Contains(msg, "invalid") || strings.Contains(msg, "signature"):
		return types.NewError(fiber.StatusUnauthorized, "Invalid token", types.ErrAuthInvalid)
	default:
		return types.NewError(fiber.StatusUnauthorized,
			fmt.Sprintf("Authentication failed: %v", err), types.ErrAuthUnknown)
	}
}

func tokenPreview(token string) string {
	if len(token) <= tokenPreviewLen {
		return token
	}
	return token[:tokenPreviewLen]
}
