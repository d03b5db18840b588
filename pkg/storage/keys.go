package storage

// Overlay keys. Each key maps to one JSON document; versions are baked into
// the key so a format change can start from a clean slate without migrating
// old rows.
const (
	KeyFavoriteIDs = "listingpro_favoriteIds_v1"
	KeyNotes       = "listingpro_listingNotes_v1"
	KeyTags        = "listingpro_listingTags_v1"
	KeyLeadScores  = "listingpro_listingLeadScores_v1"
	KeyValuations  = "listingpro_listingValuations_v1"
	KeyUserAdded   = "listingpro_userAddedListings_v1"
	KeyTasks       = "listingpro_tasks_v1"
	KeyWidgets     = "listingpro_customWidgets_v2"

	KeyGmailConnected    = "listingpro_gmailConnected_v1"
	KeyTwilioConfig      = "listingpro_twilioConfig_v1"
	KeySMTPConfig        = "listingpro_smtpConfig_v1"
	KeyManyChatConnected = "listingpro_manychatConnected_v1"
	KeyVboutConnected    = "listingpro_vboutConnected_v1"
	KeyVboutAPIKey       = "listingpro_vboutApiKey_v1"
)

// ListingOverlayKeys are the per-listing overlay tables cleared or rewritten
// together on cascade delete and resync.
var ListingOverlayKeys = []string{
	KeyFavoriteIDs,
	KeyNotes,
	KeyTags,
	KeyLeadScores,
	KeyValuations,
	KeyUserAdded,
}
