package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the ID token
// on outbound cloud requests.
const AccessTokenHeaderName = "access_token"

// PreferencesNamespace is the default name of the local preferences file.
const PreferencesNamespace = "EpicQuestPrefs"
