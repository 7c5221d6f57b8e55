package domain

// TokenPair is what login returns: the short-lived access token used on
// each protected request and the longer-lived refresh token used solely to
// mint new access tokens. Both are self-contained signed claims; neither is
// persisted server-side, so revocation is purely by expiry.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
