// Package admin holds what the administrative operation packages
// (admin/ldap, admin/locale, ...) share: the location of the device profile
// that global AAA configuration hangs off of.
package admin

// DefaultProfile is the device profile UCS Central creates out of the box.
// All of the stock AAA configuration lives under it.
const DefaultProfile = "default"

// DeviceProfileDN returns the DN of a device profile, e.g.
// "org-root/deviceprofile-default".
func DeviceProfileDN(name string) string {
	return "org-root/deviceprofile-" + name
}

// BaseDN is the device-profile DN the operation packages configure under.
func BaseDN() string {
	return DeviceProfileDN(DefaultProfile)
}
