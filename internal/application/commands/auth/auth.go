package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shanedonnelly/devops/internal/application/consts"
	"github.com/shanedonnelly/devops/internal/application/dto"
	"github.com/shanedonnelly/devops/internal/application/errs"
	"github.com/shanedonnelly/devops/internal/application/interfaces"
	infraauth "github.com/shanedonnelly/devops/internal/infra/auth"
	"github.com/shanedonnelly/devops/internal/infra/db"
)

type Auth struct {
	users     interfaces.UserStore
	sites     interfaces.SiteStore
	catalogue interfaces.CatalogueStore
	configs   interfaces.ConfigStore
	tokens    *infraauth.TokenProvider
	hasher    *infraauth.PasswordHasher
}

func NewAuth(store interfaces.Store, configs interfaces.ConfigStore,
	tokens *infraauth.TokenProvider, hasher *infraauth.PasswordHasher) *Auth {
	return &Auth{
		users:     store,
		sites:     store,
		catalogue: store,
		configs:   configs,
		tokens:    tokens,
		hasher:    hasher,
	}
}

func (c *Auth) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error) {
	_, err := c.users.GetUserByUsername(ctx, req.Username)
	if err == nil {
		return nil, errs.ConflictError{Err: errors.New("username already exists")}
	}
	if !errors.Is(err, interfaces.ErrNotFound) {
		return nil, fmt.Errorf("err checking existing user, %v", err)
	}

	hash, err := c.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("err hashing password, %v", err)
	}

	userID, err := c.users.InsertUser(ctx, db.User{
		Username:  req.Username,
		Password:  hash,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return nil, fmt.Errorf("err creating user, %v", err)
	}

	return c.issueToken(userID)
}

func (c *Auth) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := c.users.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, errs.UnauthorizedError{Err: errors.New("invalid credentials")}
		}
		return nil, fmt.Errorf("err getting user, %v", err)
	}

	if !c.hasher.Verify(req.Password, user.Password) {
		return nil, errs.UnauthorizedError{Err: errors.New("invalid credentials")}
	}

	return c.issueToken(user.ID)
}

// DeleteUser removes the caller's account together with every site the user
// owns, each site's catalogue and, best-effort, its config blob.
func (c *Auth) DeleteUser(ctx context.Context, id uint64, identity *infraauth.Identity) error {
	if id != identity.UserID {
		return errs.PermissionsError{Err: errors.New("not authorized")}
	}

	sites, err := c.sites.ListSitesByOwner(ctx, id)
	if err != nil {
		return fmt.Errorf("err listing user sites, %v", err)
	}
	for _, site := range sites {
		if err := c.configs.DeleteConfig(ctx, site.StringID); err != nil {
			slog.Error("error deleting config blob", "slug", site.StringID, "err", err)
		}
		if err := c.catalogue.DeleteCatalogue(ctx, site.ID); err != nil {
			return fmt.Errorf("err deleting site catalogue, %v", err)
		}
		if err := c.sites.DeleteSite(ctx, site.ID); err != nil {
			return fmt.Errorf("err deleting site, %v", err)
		}
	}

	if err := c.users.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return errs.NotFoundError{Err: errors.New("user not found")}
		}
		return fmt.Errorf("err deleting user, %v", err)
	}
	return nil
}

func (c *Auth) issueToken(userID uint64) (*dto.TokenResponse, error) {
	token, err := c.tokens.Issue(userID)
	if err != nil {
		return nil, fmt.Errorf("err issuing token, %v", err)
	}
	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   consts.TokenType,
	}, nil
}
