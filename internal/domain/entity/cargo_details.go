package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// CargoSource identifies which client produced a cargo description.
type CargoSource string

const (
	CargoSourceWeb    CargoSource = "web"
	CargoSourceMobile CargoSource = "mobile"
)

// WebPackage is one line of the web client's packing list.
type WebPackage struct {
	Kind  string `json:"kind"`
	Count int    `json:"count"`
}

// WebCargo is the cargo shape sent by the web client.
type WebCargo struct {
	CargoType   string       `json:"cargo_type"`
	Description string       `json:"description,omitempty"`
	Packages    []WebPackage `json:"packages,omitempty"`
}

// MobileItem is one line of the mobile client's item list.
type MobileItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// MobileCargo is the cargo shape sent by the mobile app.
type MobileCargo struct {
	Type  string       `json:"type"`
	Items []MobileItem `json:"items,omitempty"`
}

// CargoDetails is a tagged union over the known cargo payloads.
// Exactly one of Web or Mobile is set, matching Source.
type CargoDetails struct {
	Source CargoSource
	Web    *WebCargo
	Mobile *MobileCargo
}

// CargoType returns the cargo category regardless of producer.
func (d CargoDetails) CargoType() string {
	switch d.Source {
	case CargoSourceWeb:
		if d.Web != nil {
			return d.Web.CargoType
		}
	case CargoSourceMobile:
		if d.Mobile != nil {
			return d.Mobile.Type
		}
	}

	return ""
}

// Validate checks that the variant matches the tag and carries its required fields.
func (d CargoDetails) Validate() error {
	switch d.Source {
	case CargoSourceWeb:
		if d.Web == nil || strings.TrimSpace(d.Web.CargoType) == "" {
			return fmt.Errorf("web cargo requires cargo_type")
		}
		for _, p := range d.Web.Packages {
			if p.Count <= 0 || strings.TrimSpace(p.Kind) == "" {
				return fmt.Errorf("web cargo package needs a kind and a positive count")
			}
		}
	case CargoSourceMobile:
		if d.Mobile == nil || strings.TrimSpace(d.Mobile.Type) == "" {
			return fmt.Errorf("mobile cargo requires type")
		}
		for _, it := range d.Mobile.Items {
			if it.Quantity <= 0 || strings.TrimSpace(it.Name) == "" {
				return fmt.Errorf("mobile cargo item needs a name and a positive quantity")
			}
		}
	default:
		return fmt.Errorf("unknown cargo source %q", d.Source)
	}

	return nil
}

// MarshalJSON flattens the active variant next to the source tag.
func (d CargoDetails) MarshalJSON() ([]byte, error) {
	switch d.Source {
	case CargoSourceWeb:
		return json.Marshal(struct {
			Source CargoSource `json:"source"`
			*WebCargo
		}{d.Source, d.Web})
	case CargoSourceMobile:
		return json.Marshal(struct {
			Source CargoSource `json:"source"`
			*MobileCargo
		}{d.Source, d.Mobile})
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON reads the source tag and decodes the matching variant strictly.
// Unknown tags and unknown fields are rejected.
func (d *CargoDetails) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*d = CargoDetails{}

		return nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var source CargoSource
	if tag, ok := raw["source"]; ok {
		if err := json.Unmarshal(tag, &source); err != nil {
			return err
		}
	}
	delete(raw, "source")

	rest, err := json.Marshal(raw)
	if err != nil {
		return err
	}

	decoder := json.NewDecoder(bytes.NewReader(rest))
	decoder.DisallowUnknownFields()

	switch source {
	case CargoSourceWeb:
		var web WebCargo
		if err := decoder.Decode(&web); err != nil {
			return fmt.Errorf("invalid web cargo: %w", err)
		}
		*d = CargoDetails{Source: source, Web: &web}
	case CargoSourceMobile:
		var mobile MobileCargo
		if err := decoder.Decode(&mobile); err != nil {
			return fmt.Errorf("invalid mobile cargo: %w", err)
		}
		*d = CargoDetails{Source: source, Mobile: &mobile}
	default:
		return fmt.Errorf("unknown cargo source %q", source)
	}

	return nil
}
