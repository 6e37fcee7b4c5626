package models

// The platform supports a fixed set of games. Player profiles are
// auto-provisioned one per game at signup.
const (
	GameLoL      = "lol"
	GameValorant = "valorant"
	GameInazuma  = "inazuma"
)

var SupportedGames = []string{GameLoL, GameValorant, GameInazuma}

func ValidGame(game string) bool {
	for _, g := range SupportedGames {
		if g == game {
			return true
		}
	}
	return false
}
