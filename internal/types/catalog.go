package types

// BodyMeasurements holds body or garment measurements in centimeters
type BodyMeasurements struct {
	BustCM  float64 `json:"bust_cm" validate:"gt=0"`
	WaistCM float64 `json:"waist_cm" validate:"gt=0"`
	HipsCM  float64 `json:"hips_cm" validate:"gt=0"`
}

// SizeChart maps each size to the garment's reference measurements
type SizeChart map[Size]BodyMeasurements

// Purchase is one entry of a client's purchase history
type Purchase struct {
	ProductID     string `json:"product_id" validate:"required"`
	SizePurchased Size   `json:"size_purchased" validate:"required"`
	FitFeedback   string `json:"fit_feedback"`
}

// ModelReference describes the model shown wearing a product
type ModelReference struct {
	HeightCM    int  `json:"height_cm" validate:"gte=0"`
	WearingSize Size `json:"wearing_size"`
}

// Product is a catalog garment
type Product struct {
	ProductID      string         `json:"product_id" validate:"required"`
	Name           string         `json:"name" validate:"required"`
	AvailableSizes []Size         `json:"available_sizes"`
	SizeChart      SizeChart      `json:"size_chart" validate:"required,dive"`
	Fit            FitType        `json:"fit"`
	Fabric         string         `json:"fabric"`
	ModelReference ModelReference `json:"model_reference"`
}

// Offers reports whether the product is sold in size.
func (p *Product) Offers(size Size) bool {
	for _, s := range p.AvailableSizes {
		if s == size {
			return true
		}
	}
	return false
}

// Client is a shopper profile
type Client struct {
	ClientID         string           `json:"client_id" validate:"required"`
	Name             string           `json:"name" validate:"required"`
	Age              int              `json:"age" validate:"gte=0"`
	HeightCM         int              `json:"height_cm" validate:"gt=0"`
	WeightKG         float64          `json:"weight_kg" validate:"gte=0"`
	BodyMeasurements BodyMeasurements `json:"body_measurements"`
	PreferredFit     FitPreference    `json:"preferred_fit" validate:"oneof=slim regular loose"`
	PurchaseHistory  []Purchase       `json:"purchase_history" validate:"dive"`
}

// Validate validates the Client using the validator.
func (c *Client) Validate() error {
	return validate.Struct(c)
}

// Validate validates the Product using the validator.
func (p *Product) Validate() error {
	return validate.Struct(p)
}
