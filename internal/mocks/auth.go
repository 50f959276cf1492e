package mocks

import (
	"context"
	"net"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/eventopia-server/internal/model"
)

// TokenManager is a mock of model.TokenManager.
type TokenManager struct {
	mock.Mock
}

func NewTokenManager(t testingT) *TokenManager {
	m := &TokenManager{}
	register(&m.Mock, t)
	return m
}

func (m *TokenManager) Issue(principal model.Principal) (string, error) {
	ret := m.Called(principal)
	return ret.String(0), ret.Error(1)
}

func (m *TokenManager) Verify(token string) (model.Principal, error) {
	ret := m.Called(token)
	return ret.Get(0).(model.Principal), ret.Error(1)
}

// TokenService is a mock of the token service consumed by handlers and middleware.
type TokenService struct {
	mock.Mock
}

func NewTokenService(t testingT) *TokenService {
	m := &TokenService{}
	register(&m.Mock, t)
	return m
}

func (m *TokenService) Issue(ctx context.Context, principal model.Principal) (string, error) {
	ret := m.Called(ctx, principal)
	return ret.String(0), ret.Error(1)
}

func (m *TokenService) Verify(ctx context.Context, token string) (model.Principal, error) {
	ret := m.Called(ctx, token)
	return ret.Get(0).(model.Principal), ret.Error(1)
}

// ContextManager is a mock of model.ContextManager.
type ContextManager struct {
	mock.Mock
}

func NewContextManager(t testingT) *ContextManager {
	m := &ContextManager{}
	register(&m.Mock, t)
	return m
}

func (m *ContextManager) SetPrincipalToContext(ctx context.Context, principal model.Principal) context.Context {
	ret := m.Called(ctx, principal)
	return ret.Get(0).(context.Context)
}

func (m *ContextManager) GetPrincipalFromContext(ctx context.Context) (model.Principal, bool) {
	ret := m.Called(ctx)
	return ret.Get(0).(model.Principal), ret.Bool(1)
}

// SecurityLayer is a mock of model.SecurityLayer.
type SecurityLayer struct {
	mock.Mock
}

func NewSecurityLayer(t testingT) *SecurityLayer {
	m := &SecurityLayer{}
	register(&m.Mock, t)
	return m
}

func (m *SecurityLayer) Listen(protocol, addr string) (net.Listener, error) {
	ret := m.Called(protocol, addr)
	var ln net.Listener
	if v := ret.Get(0); v != nil {
		ln = v.(net.Listener)
	}
	return ln, ret.Error(1)
}
