package client_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/totegamma/twitton"
	"github.com/totegamma/twitton/client"
	"github.com/totegamma/twitton/internal/config"
	"github.com/totegamma/twitton/internal/domain"
	"github.com/totegamma/twitton/internal/infra/repository"
	"github.com/totegamma/twitton/internal/present/rest"
	"github.com/totegamma/twitton/internal/usecase"
)

// newNode runs the real server with an identity whose domains are the listener address.
func newNode(t *testing.T) (*httptest.Server, domain.Identity) {
	t.Helper()

	srv := httptest.NewUnstartedServer(nil)
	host := srv.Listener.Addr().String()

	icon := "https://" + host + "/icon.png"
	identity := domain.NewIdentity(host, host, "admin", "PEM", &icon)
	repo := repository.NewIdentityRepository(identity)

	conf := config.Default().Server
	h := rest.NewHandler(
		conf,
		usecase.NewWebfingerUsecase(repo, nil),
		usecase.NewActorUsecase(repo, nil),
		usecase.NewInboxUsecase(nil),
	)
	srv.Config.Handler = rest.NewServer(conf, h, nil)
	srv.Start()
	t.Cleanup(srv.Close)

	return srv, identity
}

func TestClientAgainstServer(t *testing.T) {
	srv, identity := newNode(t)
	c := client.New(client.Options{Scheme: "http"})
	ctx := context.Background()

	doc, err := c.Webfinger(ctx, identity.Handle)
	require.NoError(t, err)
	assert.Equal(t, identity.Resource(), doc.Subject)
	assert.Equal(t, []string{identity.ProfileURL}, doc.Aliases)

	self, ok := doc.Link(twitton.RelSelf)
	require.True(t, ok)
	require.NotNil(t, self.Href)
	assert.Equal(t, identity.ProfileURL, *self.Href)
	require.NotNil(t, self.Type)
	assert.Equal(t, twitton.MediaTypeActivityJSON, *self.Type)

	subscribe, ok := doc.Link(twitton.RelSubscribe)
	require.True(t, ok)
	require.NotNil(t, subscribe.Template)
	assert.Equal(t, identity.SubscribeURL, *subscribe.Template)

	// self links are https; fetch the same path over the plain listener
	actor, err := c.Actor(ctx, srv.URL+"/user/admin")
	require.NoError(t, err)
	assert.Equal(t, identity.ProfileURL, actor.ID)
	assert.Equal(t, twitton.ActorTypePerson, actor.Type)
	assert.Equal(t, "admin", actor.PreferredUsername)
	assert.Equal(t, identity.InboxURL, actor.Inbox)
	assert.Equal(t, identity.KeyID(), actor.PublicKey.ID)
	assert.Equal(t, "PEM", actor.PublicKey.PublicKeyPem)
	require.NotNil(t, actor.Icon)
	assert.Equal(t, "https://"+identity.WebDomain+"/icon.png", actor.Icon.URL)
	require.NotNil(t, actor.Endpoints)
	assert.Equal(t, identity.SharedInboxURL, actor.Endpoints.SharedInbox)
}

func TestClientAgainstServerNotFound(t *testing.T) {
	srv, identity := newNode(t)
	c := client.New(client.Options{Scheme: "http"})
	ctx := context.Background()

	_, err := c.Webfinger(ctx, "nobody@"+identity.LocalDomain)
	var statusErr *client.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)

	_, err = c.Actor(ctx, srv.URL+"/user/nobody")
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
}
