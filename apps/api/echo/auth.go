package echoapi

import (
	"net/http"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/trezcool/unirecords/core"
)

var nowFunc = time.Now

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.StandardClaims
	Username string `json:"username,omitempty"`
}

type authenticator struct {
	conf      *core.Config
	jwtConfig middleware.JWTConfig
}

func newAuthenticator(conf *core.Config) *authenticator {
	return &authenticator{
		conf: conf,
		jwtConfig: middleware.JWTConfig{
			SigningKey:    []byte(conf.SecretKey),
			SigningMethod: middleware.AlgorithmHS256,
			ContextKey:    "staffToken",
			Claims:        new(Claims),
		},
	}
}

func (a *authenticator) staffClaims(staff core.Staff) *Claims {
	now := nowFunc()
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    a.conf.AppName,
			Subject:   staff.Username,
			Audience:  "Registrar",
			ExpiresAt: now.Add(a.conf.Server.JWTExpirationDelta).Unix(),
			IssuedAt:  now.Unix(),
		},
		Username: staff.Username,
	}
}

// GenerateToken generates a signed JWT token string representing the staff Claims.
func (a *authenticator) GenerateToken(staff core.Staff) (string, error) {
	method := jwt.GetSigningMethod(a.jwtConfig.SigningMethod)
	token := jwt.NewWithClaims(method, a.staffClaims(staff))

	ss, err := token.SignedString(a.jwtConfig.SigningKey)
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

// GenerateStaffToken returns a token for the staff account of conf.
func GenerateStaffToken(conf *core.Config) (string, error) {
	return newAuthenticator(conf).GenerateToken(core.Staff{Username: conf.Staff.Username})
}

// contextStaff returns the staff member authenticated by the JWT middleware, if any.
func contextStaff(ctx echo.Context) (core.Staff, bool) {
	if token, ok := ctx.Get("staffToken").(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return core.Staff{Username: claims.Username}, true
		}
	}
	return core.Staff{}, false
}

type (
	LoginRequest struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string `json:"token"`
	}
)

type authApi struct {
	auth     *authenticator
	validate *validator.Validate
}

func registerAuthAPI(g *echo.Group, auth *authenticator, validate *validator.Validate) {
	api := authApi{auth: auth, validate: validate}
	g.POST("/auth/token", api.token)
}

func (api *authApi) token(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	if err := api.validate.Struct(data); err != nil {
		return err
	}

	staff, err := api.auth.conf.Staff.Authenticate(core.CleanString(data.Username), data.Password)
	if err != nil {
		return errAuthenticationFailed
	}
	token, err := api.auth.GenerateToken(staff)
	if err != nil {
		return errors.Wrap(err, "generating token")
	}

	return ctx.JSON(http.StatusOK, LoginResponse{Token: token})
}
