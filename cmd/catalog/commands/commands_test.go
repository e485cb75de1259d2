package commands

import (
	"bytes"
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fakenft/internal/config"
	apphttp "fakenft/internal/http"
	"fakenft/internal/seed"
	"fakenft/internal/store/memory"
)

const cliSecret = "cli-test-secret"

func startAPI(t *testing.T) *httptest.Server {
	t.Helper()
	t.Setenv("JWT_SECRET", cliSecret)
	t.Setenv("API_TOKEN", "")
	fixture, err := seed.Default()
	require.NoError(t, err)
	st := memory.NewStore()
	require.NoError(t, st.Seed(fixture))
	api := httptest.NewServer(apphttp.NewServer(config.Config{JWTSecret: cliSecret}, st, nil).Router())
	t.Cleanup(api.Close)
	return api
}

func run(t *testing.T, api *httptest.Server, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{
		"--config", "",
		"--catalog-url", api.URL,
		"--profile-url", api.URL,
		"--settings", "memory",
		"--log-level", "error",
	}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func lines(s string) []string {
	return strings.Split(strings.TrimSpace(s), "\n")
}

func TestCollectionsDefaultOrder(t *testing.T) {
	api := startAPI(t)
	out, err := run(t, api, "collections")
	require.NoError(t, err)
	l := lines(out)
	require.Len(t, l, 4)
	assert.Equal(t, "sorted byNFTQuantity descending", l[0])
	assert.Contains(t, l[1], "Blue")
	assert.Contains(t, l[3], "Brown")
}

func TestCollectionsSortFlags(t *testing.T) {
	api := startAPI(t)

	out, err := run(t, api, "collections", "--sort", "name")
	require.NoError(t, err)
	l := lines(out)
	assert.Equal(t, "sorted byName ascending", l[0])
	assert.Contains(t, l[1], "Blue")
	assert.Contains(t, l[3], "Peach")

	out, err = run(t, api, "collections", "--sort", "count", "--order", "asc")
	require.NoError(t, err)
	l = lines(out)
	assert.Equal(t, "sorted byNFTQuantity ascending", l[0])
	assert.Contains(t, l[1], "Brown")

	_, err = run(t, api, "collections", "--sort", "price")
	assert.Error(t, err)
}

func TestCollectionsOrderAloneAppliesToActiveSort(t *testing.T) {
	api := startAPI(t)
	out, err := run(t, api, "collections", "--order", "asc")
	require.NoError(t, err)
	l := lines(out)
	require.Len(t, l, 4)
	assert.Equal(t, "sorted byNFTQuantity ascending", l[0])
	assert.Contains(t, l[1], "Brown")
	assert.Contains(t, l[3], "Blue")

	_, err = run(t, api, "collections", "--order", "sideways")
	assert.Error(t, err)
}

func TestRefreshTracesStates(t *testing.T) {
	api := startAPI(t)
	out, err := run(t, api, "refresh")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"state: loading",
		"state: show",
		"state: start",
		"state: show",
		"navigation: base",
		"3 collections",
	}, lines(out))
}

func TestCollectionDetails(t *testing.T) {
	api := startAPI(t)
	out, err := run(t, api, "collection", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "Blue (4 items)")
	assert.Contains(t, out, "author: Aurelio Ramos")
	assert.Regexp(t, `69\s+Ellsa.*liked`, out)
	assert.Regexp(t, `4\s+Bonnie.*in cart`, out)

	_, err = run(t, api, "collection", "7")
	assert.Error(t, err)
}

func TestLikeAndMyNFTs(t *testing.T) {
	api := startAPI(t)
	out, err := run(t, api, "like", "68", "69")
	require.NoError(t, err)
	assert.Equal(t, []string{"68 liked", "69 unliked"}, lines(out))

	out, err = run(t, api, "my-nfts", "--sort", "price")
	require.NoError(t, err)
	l := lines(out)
	require.Len(t, l, 4)
	assert.Contains(t, l[0], "Ellsa")
	assert.Contains(t, l[3], "Dingo")
	assert.True(t, strings.HasPrefix(l[3], "♥"), "68 should be marked liked: %q", l[3])

	out, err = run(t, api, "my-nfts", "--liked")
	require.NoError(t, err)
	assert.Len(t, lines(out), 2)
}

func TestPayEmptiesCart(t *testing.T) {
	api := startAPI(t)
	out, err := run(t, api, "order")
	require.NoError(t, err)
	assert.Contains(t, out, "2 items")

	out, err = run(t, api, "pay", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "paid order 1")

	out, err = run(t, api, "order")
	require.NoError(t, err)
	assert.Equal(t, "cart is empty\n", out)

	_, err = run(t, api, "pay", "1")
	assert.ErrorContains(t, err, "declined")
}

func TestNFTBatchFailsAsWhole(t *testing.T) {
	api := startAPI(t)
	out, err := run(t, api, "nft", "1", "2")
	require.NoError(t, err)
	assert.Len(t, lines(out), 2)

	_, err = run(t, api, "nft", "1", "missing")
	assert.Error(t, err)
}

func TestTokenCommand(t *testing.T) {
	api := startAPI(t)
	out, err := run(t, api, "token", "--show")
	require.NoError(t, err)
	l := lines(out)
	require.Len(t, l, 2)
	assert.True(t, strings.HasPrefix(l[0], "token stored, expires "))
	assert.Equal(t, 2, strings.Count(l[1], "."), "expected a JWT, got %q", l[1])
}
