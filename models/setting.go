package models

// Setting is one decrypted key/value pair destined for the configuration
// registry. The server spells the fields "Key" and "Value"; decoding is
// case-insensitive.
type Setting struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Reserved metadata keys merged into the settings store next to the decrypted
// settings. The prefix keeps them out of the way of application keys.
const (
	MetadataPrefix = "__Configur_"

	KeyAPIHost                 = MetadataPrefix + "ApiHost"
	KeyAppID                   = MetadataPrefix + "AppId"
	KeyIdentityServerAuthority = MetadataPrefix + "IdentityServerAuthority"
	KeyIsDevelopment           = MetadataPrefix + "IsDevelopment"
	KeyIsFileCacheEnabled      = MetadataPrefix + "IsFileCacheEnabled"
	KeyRefreshInterval         = MetadataPrefix + "RefreshInterval"
	KeySignalRURL              = MetadataPrefix + "SignalRUrl"
	KeySignalRAccessToken      = MetadataPrefix + "SignalRAccessToken"
)
