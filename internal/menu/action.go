// Package menu defines the navigation graph: typed callback actions and the
// inline/reply keyboards each state renders. Transitions are stateless; each
// callback payload fully determines the next render.
package menu

import (
	"fmt"
	"strings"
)

// Kind enumerates the menu transitions. Keeping the set closed lets the
// dispatcher switch exhaustively instead of matching string prefixes.
type Kind int

const (
	KindUnknown Kind = iota
	KindMainMenu
	KindMaterials
	KindPresenterMaterials
	KindPresenterVideos
	KindPresenterDocs
	KindDocument
	KindLinks
	KindLinksByPresenter
	KindPresenterLinks
	KindLocation
	KindWifi
	KindExness
	KindAdminBroadcast
)

// Wire payloads, kept byte-compatible with the deployed button set so
// keyboards rendered before an upgrade keep working.
const (
	payloadMainMenu         = "volver_menu_principal"
	payloadMaterials        = "menu_material"
	payloadPresenterPrefix  = "mat_pres"
	payloadVideosPrefix     = "mat_videos_url"
	payloadDocsPrefix       = "mat_docs"
	payloadDocPrefix        = "doc"
	payloadLinks            = "menu_enlaces"
	payloadLinksByPresenter = "enlaces_por_presentador"
	payloadLinkPresPrefix   = "link_pres"
	payloadLocation         = "menu_ubicacion"
	payloadWifi             = "menu_wifi"
	payloadExness           = "menu_exness"
	payloadAdminBroadcast   = "admin_broadcast"
)

// Action is a decoded callback payload.
type Action struct {
	Kind        Kind
	PresenterID string
	Document    string
}

// Encode renders the action as its colon-delimited wire payload.
func (a Action) Encode() string {
	switch a.Kind {
	case KindMainMenu:
		return payloadMainMenu
	case KindMaterials:
		return payloadMaterials
	case KindPresenterMaterials:
		return payloadPresenterPrefix + ":" + a.PresenterID
	case KindPresenterVideos:
		return payloadVideosPrefix + ":" + a.PresenterID
	case KindPresenterDocs:
		return payloadDocsPrefix + ":" + a.PresenterID
	case KindDocument:
		return payloadDocPrefix + ":" + a.PresenterID + ":" + a.Document
	case KindLinks:
		return payloadLinks
	case KindLinksByPresenter:
		return payloadLinksByPresenter
	case KindPresenterLinks:
		return payloadLinkPresPrefix + ":" + a.PresenterID
	case KindLocation:
		return payloadLocation
	case KindWifi:
		return payloadWifi
	case KindExness:
		return payloadExness
	case KindAdminBroadcast:
		return payloadAdminBroadcast
	}
	return ""
}

// Decode parses a wire payload into an Action. Unknown payloads come back
// with KindUnknown and an error; the dispatcher answers those with an
// informational message rather than failing the update.
func Decode(payload string) (Action, error) {
	switch payload {
	case payloadMainMenu:
		return Action{Kind: KindMainMenu}, nil
	case payloadMaterials:
		return Action{Kind: KindMaterials}, nil
	case payloadLinks:
		return Action{Kind: KindLinks}, nil
	case payloadLinksByPresenter:
		return Action{Kind: KindLinksByPresenter}, nil
	case payloadLocation:
		return Action{Kind: KindLocation}, nil
	case payloadWifi:
		return Action{Kind: KindWifi}, nil
	case payloadExness:
		return Action{Kind: KindExness}, nil
	case payloadAdminBroadcast:
		return Action{Kind: KindAdminBroadcast}, nil
	}

	prefix, rest, ok := strings.Cut(payload, ":")
	if !ok || rest == "" {
		return Action{}, fmt.Errorf("unknown callback payload %q", payload)
	}

	switch prefix {
	case payloadPresenterPrefix:
		return Action{Kind: KindPresenterMaterials, PresenterID: rest}, nil
	case payloadVideosPrefix:
		return Action{Kind: KindPresenterVideos, PresenterID: rest}, nil
	case payloadDocsPrefix:
		return Action{Kind: KindPresenterDocs, PresenterID: rest}, nil
	case payloadLinkPresPrefix:
		return Action{Kind: KindPresenterLinks, PresenterID: rest}, nil
	case payloadDocPrefix:
		pid, title, ok := strings.Cut(rest, ":")
		if !ok || pid == "" || title == "" {
			return Action{}, fmt.Errorf("malformed document payload %q", payload)
		}
		return Action{Kind: KindDocument, PresenterID: pid, Document: title}, nil
	}
	return Action{}, fmt.Errorf("unknown callback payload %q", payload)
}
