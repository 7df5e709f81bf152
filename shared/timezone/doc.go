// Package timezone pins every timestamp the service produces to the zone set by APP_TIMEZONE.
//
// Booking dates given as plain calendar dates ("2025-03-01") are read as midnight in that zone,
// and stored metadata is stamped with Now(). Use IANA names such as "UTC" or "Asia/Jakarta";
// an unknown name falls back to UTC.
package timezone
