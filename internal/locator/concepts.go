package locator

// Page-level concepts
const (
	Header Concept = "page.header" // {level} {text}
	Body   Concept = "page.body"
)

// Menu
const (
	MenuStartPage       Concept = "menu.startPage"
	MenuMyProfile       Concept = "menu.myProfile"
	MenuHistory         Concept = "menu.history"
	MenuBuyPeriodTicket Concept = "menu.buyPeriodTicket"
	MenuBuyCarnetTicket Concept = "menu.buyCarnetTicket"
	MenuLogOut          Concept = "menu.logOut"
)

// Authentication
const (
	AuthUseEmail          Concept = "auth.useEmail"
	AuthCreateProfile     Concept = "auth.createProfile"
	AuthEmailInput        Concept = "auth.emailInput"
	AuthPasswordInput     Concept = "auth.passwordInput"
	AuthSubmit            Concept = "auth.submit"
	AuthPhoneInput        Concept = "auth.phoneInput"
	AuthLoggedInIndicator Concept = "auth.loggedIn"
)

// My profile
const (
	ProfileFirstName            Concept = "profile.firstName"
	ProfileLastName             Concept = "profile.lastName"
	ProfilePhoneNumber          Concept = "profile.phoneNumber"
	ProfileLogInMethod          Concept = "profile.logInMethod"
	ProfileStoredPayments       Concept = "profile.storedPayments"
	ProfilePolicyStatement      Concept = "profile.policyStatement"
	ProfileSaveButton           Concept = "profile.saveButton"
	ProfileSaveLoading          Concept = "profile.saveLoading"
	ProfileCancel               Concept = "profile.cancel"
	ProfileEditName             Concept = "profile.editName"
	ProfileFirstNameInput       Concept = "profile.firstNameInput"
	ProfileLastNameInput        Concept = "profile.lastNameInput"
	ProfileEditPhone            Concept = "profile.editPhone"
	ProfilePhoneInput           Concept = "profile.phoneInput"
	ProfilePhoneError           Concept = "profile.phoneError"
	ProfileTravelCard           Concept = "profile.travelCard"
	ProfileTravelCardSection    Concept = "profile.travelCardSection"
	ProfileAddTravelCard        Concept = "profile.addTravelCard"
	ProfileRemoveTravelCard     Concept = "profile.removeTravelCard"
	ProfileConfirmRemoveCard    Concept = "profile.confirmRemoveTravelCard"
	ProfileRemoveCardWarning    Concept = "profile.removeTravelCardWarning"
	ProfileTravelCardInput      Concept = "profile.travelCardInput"
	ProfileTravelCardError      Concept = "profile.travelCardError"
	ProfileEmailConsent         Concept = "profile.emailConsent"
	ProfileEmailConsentLabel    Concept = "profile.emailConsentLabel"
	ProfileNotificationConsent  Concept = "profile.notificationConsent"
	ProfileNotificationLabel    Concept = "profile.notificationConsentLabel"
	ProfileStoredPayment        Concept = "profile.storedPayment"       // {type}
	ProfileStoredPaymentIcon    Concept = "profile.storedPaymentIcon"   // {type}
	ProfileStoredPaymentExpiry  Concept = "profile.storedPaymentExpiry" // {type}
	ProfileRemoveStoredPayment  Concept = "profile.removeStoredPayment" // {type}
	ProfileStoredPaymentWarning Concept = "profile.storedPaymentWarning"
)

// New ticket (period and carnet)
const (
	PurchaseSection        Concept = "purchase.section"        // {title}
	PurchaseSectionToggle  Concept = "purchase.sectionToggle"  // {title}
	PurchaseSectionValue   Concept = "purchase.sectionValue"   // {title}
	PurchaseSectionOptions Concept = "purchase.sectionOptions" // {title}
	PurchaseOption         Concept = "purchase.option"         // {title} {option}
	PurchaseDepartureZone  Concept = "purchase.departureZone"
	PurchaseArrivalZone    Concept = "purchase.arrivalZone"
	PurchaseZoneTariff     Concept = "purchase.zoneTariff" // {select} {zone}
	PurchaseInFuture       Concept = "purchase.inFuture"
	PurchaseDate           Concept = "purchase.date"
	PurchaseTime           Concept = "purchase.time"
	PurchaseValidityError  Concept = "purchase.validityError"
	PurchaseWarning        Concept = "purchase.warning"
	PurchaseInfoText       Concept = "purchase.infoText"
	PurchasePrice          Concept = "purchase.price"
	PurchaseVAT            Concept = "purchase.vat"
	PurchaseGoToSummary    Concept = "purchase.goToSummary"
)

// Summary
const (
	SummaryDetail              Concept = "summary.detail" // {label}
	SummaryPrice               Concept = "summary.price"
	SummaryPaymentOption       Concept = "summary.paymentOption"      // {method}
	SummaryPaymentOptionLabel  Concept = "summary.paymentOptionLabel" // {method}
	SummaryStoredPayment       Concept = "summary.storedPayment"      // {type}
	SummaryStoredPaymentExpiry Concept = "summary.storedPaymentExpiry"
	SummaryStoredPaymentIcon   Concept = "summary.storedPaymentIcon"
	SummaryStorePayment        Concept = "summary.storePayment"
	SummaryStorePaymentLabel   Concept = "summary.storePaymentLabel"
	SummaryPayButton           Concept = "summary.payButton"
	SummaryBack                Concept = "summary.back"
)

// My tickets
const (
	TicketsList        Concept = "tickets.list"
	TicketsAccountInfo Concept = "tickets.accountInfo"
	TicketsTravelCard  Concept = "tickets.travelCard"
	Ticket             Concept = "ticket.card"    // {orderId}
	TicketIcon         Concept = "ticket.icon"    // {orderId}
	TicketHeader       Concept = "ticket.header"  // {orderId}
	TicketSummary      Concept = "ticket.summary" // {orderId}
	TicketToggle       Concept = "ticket.toggle"  // {orderId}
	TicketDetails      Concept = "ticket.details" // {orderId}
	TicketReceipt      Concept = "ticket.receipt" // {orderId}
)

// Purchase history
const (
	HistoryTicket  Concept = "history.ticket"  // {orderId}
	HistoryToggle  Concept = "history.toggle"  // {orderId}
	HistoryDetails Concept = "history.details" // {orderId}
)
