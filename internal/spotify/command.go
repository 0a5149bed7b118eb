package spotify

// BundleID is the stable bundle identifier Spotify registers with the
// system. Scripts and process lookups address the app by this identifier,
// never by display name, which may be localized.
const BundleID = "com.spotify.client"

// ProcessName is the executable name used by the pgrep fallback when
// lsappinfo is unavailable.
const ProcessName = "Spotify"

// Command identifies one of the fixed AppleScript operations the bridge
// can issue. The set is closed: every command maps to a static script
// below, so no external input is ever interpolated into script text.
type Command int

const (
	GetPlayerState Command = iota
	GetTrackName
	GetArtistName
	GetArtworkURL
	PlayPause
	NextTrack
	PreviousTrack
	Activate
)

// scripts holds the AppleScript template for each command. All scripts
// target the app by bundle id.
var scripts = map[Command]string{
	GetPlayerState: `tell application id "com.spotify.client" to player state as string`,
	GetTrackName:   `tell application id "com.spotify.client" to name of current track as string`,
	GetArtistName:  `tell application id "com.spotify.client" to artist of current track as string`,
	GetArtworkURL:  `tell application id "com.spotify.client" to artwork url of current track as string`,
	PlayPause:      `tell application id "com.spotify.client" to playpause`,
	NextTrack:      `tell application id "com.spotify.client" to next track`,
	PreviousTrack:  `tell application id "com.spotify.client" to previous track`,
	Activate:       `tell application id "com.spotify.client" to activate`,
}

// Script returns the AppleScript text for the command.
func (c Command) Script() string {
	return scripts[c]
}

// ReturnsValue reports whether the command produces a scalar result.
// Transport commands and Activate are fire-and-forget.
func (c Command) ReturnsValue() bool {
	switch c {
	case GetPlayerState, GetTrackName, GetArtistName, GetArtworkURL:
		return true
	default:
		return false
	}
}

// String returns a short name for logging.
func (c Command) String() string {
	switch c {
	case GetPlayerState:
		return "get_player_state"
	case GetTrackName:
		return "get_track_name"
	case GetArtistName:
		return "get_artist_name"
	case GetArtworkURL:
		return "get_artwork_url"
	case PlayPause:
		return "playpause"
	case NextTrack:
		return "next_track"
	case PreviousTrack:
		return "previous_track"
	case Activate:
		return "activate"
	default:
		return "unknown"
	}
}
