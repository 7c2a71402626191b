package flow

import "github.com/atb-as/webshop-e2e/internal/intercept"

// Aliases of the webshop backend calls flows wait for
const (
	AliasProfile           = "profile"
	AliasRecurringPayments = "recurringPayments"
	AliasConsent           = "consent"
	AliasAddTravelCard     = "addTravelcard"
	AliasRemoveTravelCard  = "removeTravelcard"
	AliasZones             = "zones"
	AliasReserve           = "reserve"
	AliasPayments          = "payments"
)

var (
	profileUpdate     = Intercept{AliasProfile, "PATCH", "**/webshop/v1/profile"}
	recurringPayments = Intercept{AliasRecurringPayments, "GET", "**/ticket/v2/recurring-payments"}
	consentFetch      = Intercept{AliasConsent, "GET", "**/webshop/v1/consent"}
	consentUpdate     = Intercept{AliasConsent, "POST", "**/webshop/v1/consent"}
	travelCardAdd     = Intercept{AliasAddTravelCard, "POST", "**/webshop/v1/travelcard"}
	travelCardRemove  = Intercept{AliasRemoveTravelCard, "DELETE", "**/webshop/v1/travelcard"}
	zoneSearch        = Intercept{AliasZones, intercept.AnyMethod, "**/ticket/v1/search/zones"}
	reserve           = Intercept{AliasReserve, "POST", "**/ticket/v2/reserve"}
	payments          = Intercept{AliasPayments, intercept.AnyMethod, "**/ticket/v1/payments/**"}
)
