package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_SimplePayloads(t *testing.T) {
	cases := map[string]Kind{
		"volver_menu_principal":   KindMainMenu,
		"menu_material":           KindMaterials,
		"menu_enlaces":            KindLinks,
		"enlaces_por_presentador": KindLinksByPresenter,
		"menu_ubicacion":          KindLocation,
		"menu_wifi":               KindWifi,
		"menu_exness":             KindExness,
		"admin_broadcast":         KindAdminBroadcast,
	}
	for payload, kind := range cases {
		a, err := Decode(payload)
		require.NoError(t, err, payload)
		assert.Equal(t, kind, a.Kind, payload)
	}
}

func TestDecode_PresenterPayloads(t *testing.T) {
	a, err := Decode("mat_pres:p2")
	require.NoError(t, err)
	assert.Equal(t, KindPresenterMaterials, a.Kind)
	assert.Equal(t, "p2", a.PresenterID)

	a, err = Decode("mat_videos_url:p1")
	require.NoError(t, err)
	assert.Equal(t, KindPresenterVideos, a.Kind)

	a, err = Decode("link_pres:p3")
	require.NoError(t, err)
	assert.Equal(t, KindPresenterLinks, a.Kind)
}

func TestDecode_DocumentCarriesTitleWithColons(t *testing.T) {
	a, err := Decode("doc:p2:VALORACIÓN RAPIDA: DIDACTICA")
	require.NoError(t, err)
	assert.Equal(t, KindDocument, a.Kind)
	assert.Equal(t, "p2", a.PresenterID)
	assert.Equal(t, "VALORACIÓN RAPIDA: DIDACTICA", a.Document)
}

func TestDecode_Malformed(t *testing.T) {
	for _, payload := range []string{"", "bogus", "doc:p2", "doc::title", "mystery:p1"} {
		_, err := Decode(payload)
		assert.Error(t, err, payload)
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	actions := []Action{
		{Kind: KindMainMenu},
		{Kind: KindPresenterMaterials, PresenterID: "p4"},
		{Kind: KindPresenterVideos, PresenterID: "p1"},
		{Kind: KindPresenterDocs, PresenterID: "p2"},
		{Kind: KindDocument, PresenterID: "p2", Document: "SEC"},
		{Kind: KindPresenterLinks, PresenterID: "p5"},
		{Kind: KindAdminBroadcast},
	}
	for _, a := range actions {
		got, err := Decode(a.Encode())
		require.NoError(t, err, a.Encode())
		assert.Equal(t, a, got)
	}
}
