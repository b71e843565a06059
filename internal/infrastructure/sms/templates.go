package sms

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Message keys for the transactional templates
const (
	KeyVendorApproved  = "vendor.approved"
	KeyVendorRejected  = "vendor.rejected"
	KeyVendorSuspended = "vendor.suspended"
	KeyProductApproved = "product.approved"
)

var indianEnglish = language.MustParse("en-IN")

func init() {
	for key, format := range map[string]string{
		KeyVendorApproved:  "Hi %s, your Sellaids store \"%s\" has been approved. You can now list products from your vendor dashboard.",
		KeyVendorRejected:  "Hi %s, your Sellaids store \"%s\" could not be approved. Reason: %s",
		KeyVendorSuspended: "Hi %s, your Sellaids store \"%s\" has been suspended. Please contact support.",
		KeyProductApproved: "Your listing \"%s\" is now live on Sellaids at Rs. %.2f.",
	} {
		_ = message.SetString(indianEnglish, key, format)
	}
}

var printer = message.NewPrinter(indianEnglish)

// VendorApproved renders the vendor approval text
func VendorApproved(ownerName, storeName string) string {
	return printer.Sprintf(KeyVendorApproved, ownerName, storeName)
}

// VendorRejected renders the vendor rejection text with the admin's reason
func VendorRejected(ownerName, storeName, reason string) string {
	return printer.Sprintf(KeyVendorRejected, ownerName, storeName, reason)
}

func VendorSuspended(ownerName, storeName string) string {
	return printer.Sprintf(KeyVendorSuspended, ownerName, storeName)
}

// ProductApproved renders the listing-live text. The price is grouped the
// way Indian readers expect.
func ProductApproved(productName string, price decimal.Decimal) string {
	return printer.Sprintf(KeyProductApproved, productName, price.InexactFloat64())
}
