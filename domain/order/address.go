package order

// Address is the delivery address value object. It is validated on
// construction and immutable afterwards; equality is by value.
type Address struct {
	street  string
	city    string
	zipCode string
	country string
}

// NewAddress creates a validated Address. Every component is required.
func NewAddress(street, city, zipCode, country string) (Address, error) {
	if street == "" {
		return Address{}, NewInvalidAddressError("street")
	}
	if city == "" {
		return Address{}, NewInvalidAddressError("city")
	}
	if zipCode == "" {
		return Address{}, NewInvalidAddressError("zip code")
	}
	if country == "" {
		return Address{}, NewInvalidAddressError("country")
	}
	return Address{street: street, city: city, zipCode: zipCode, country: country}, nil
}

// RebuildAddress reconstructs an Address loaded from storage. The
// fields were validated when the aggregate was first saved.
func RebuildAddress(street, city, zipCode, country string) Address {
	return Address{street: street, city: city, zipCode: zipCode, country: country}
}

func (a Address) Street() string  { return a.street }
func (a Address) City() string    { return a.city }
func (a Address) ZipCode() string { return a.zipCode }
func (a Address) Country() string { return a.country }

// Equals compares two addresses by value.
func (a Address) Equals(other interface{}) bool {
	o, ok := other.(Address)
	if !ok {
		return false
	}
	return a == o
}

// IsZero reports whether the address was never set.
func (a Address) IsZero() bool {
	return a == Address{}
}
