package booking

import (
	"time"

	"mightymoves/models"
	"mightymoves/services/form"
)

// Definition is one bookable service: its form plus how a submission becomes a backend request.
type Definition struct {
	form.Schema
	Description  string
	SuccessToast string
	Build        func(values map[string]string, now time.Time) models.CreateBookingRequest
}

var moveDefinition = Definition{
	Schema: form.Schema{
		Service:     "move",
		Title:       "Book the Move",
		SubmitLabel: "Book Move",
		Fields: []models.FormField{
			models.TextField("pickup", "Pickup Location", "Enter pickup address"),
			models.TextField("dropoff", "Drop-off Location", "Enter drop-off address"),
			models.SelectField("vehicle", "Vehicle Type", "Small Van", "Medium Truck", "Large Truck", "Specialty Vehicle"),
			models.DateTimeField("datetime", "Preferred Date & Time"),
		},
		RequireTerms: true,
	},
	Description:  "Plan your move with confidence. Select your pickup and drop-off locations, choose the right vehicle, and set your preferred date and time.",
	SuccessToast: "Move booking submitted!",
	Build:        buildMove,
}

var wasteDefinition = Definition{
	Schema: form.Schema{
		Service:     "waste",
		Title:       "Waste Collection Booking",
		SubmitLabel: "Book Waste Pickup",
		Fields: []models.FormField{
			models.SelectField("wasteType", "Waste Type", "Household", "Construction", "Commercial", "Recyclable", "Hazardous"),
			models.TextField("address", "Pickup Address", "Enter pickup address"),
			models.SelectField("frequency", "Frequency", "One-time", "Recurring"),
		},
		RequireTerms: true,
	},
	Description:  "Schedule a one-time or recurring waste pickup for your home, office, or construction site.",
	SuccessToast: "Waste booking submitted successfully!",
	Build:        buildWaste,
}

var logisticsDefinition = Definition{
	Schema: form.Schema{
		Service:     "logistics",
		Title:       "Send a Package",
		SubmitLabel: "Send Package",
		Fields: []models.FormField{
			models.TextField("sender", "Sender Info", "Sender name, phone, address"),
			models.TextField("receiver", "Receiver Info", "Receiver name, phone, address"),
			models.TextField("package", "Package Details", "Weight, size, description"),
			models.SelectField("deliveryType", "Delivery Type", "Standard", "Express"),
			models.DateTimeField("pickupDate", "Pickup Date & Time"),
		},
		RequireTerms: true,
	},
	Description:  "Send your packages quickly and securely. Enter sender and receiver details, package information, and choose your preferred delivery type.",
	SuccessToast: "Logistics booking submitted successfully!",
	Build:        buildLogistics,
}

// Catalog lists the bookable services in display order.
var Catalog = []Definition{moveDefinition, wasteDefinition, logisticsDefinition}

// Lookup finds a definition by its service key.
func Lookup(service string) (Definition, bool) {
	for _, d := range Catalog {
		if d.Service == service {
			return d, true
		}
	}
	return Definition{}, false
}

func stampDate(value string, now time.Time) string {
	if value != "" {
		return value
	}
	return now.UTC().Format(time.RFC3339)
}

func buildMove(v map[string]string, now time.Time) models.CreateBookingRequest {
	return models.CreateBookingRequest{
		ServiceType:   models.ServiceMoving,
		Address:       v["pickup"] + " to " + v["dropoff"],
		Date:          stampDate(v["datetime"], now),
		Price:         MovingPrice(v["vehicle"]),
		PaymentMethod: v[form.PaymentMethodKey],
		Details: map[string]string{
			"pickup":   v["pickup"],
			"dropoff":  v["dropoff"],
			"vehicle":  v["vehicle"],
			"datetime": v["datetime"],
		},
	}
}

func buildWaste(v map[string]string, now time.Time) models.CreateBookingRequest {
	return models.CreateBookingRequest{
		ServiceType:   models.ServiceWaste,
		Address:       v["address"],
		Date:          stampDate("", now),
		Price:         WastePrice(v["wasteType"], v["frequency"]),
		PaymentMethod: v[form.PaymentMethodKey],
		Details: map[string]string{
			"waste_type": v["wasteType"],
			"frequency":  v["frequency"],
			"address":    v["address"],
		},
	}
}

func buildLogistics(v map[string]string, now time.Time) models.CreateBookingRequest {
	return models.CreateBookingRequest{
		ServiceType:   models.ServiceLogistics,
		Address:       v["sender"] + " to " + v["receiver"],
		Date:          stampDate(v["pickupDate"], now),
		Price:         LogisticsPrice(v["deliveryType"]),
		PaymentMethod: v[form.PaymentMethodKey],
		Details: map[string]string{
			"sender":        v["sender"],
			"receiver":      v["receiver"],
			"package":       v["package"],
			"delivery_type": v["deliveryType"],
			"pickup_date":   v["pickupDate"],
		},
	}
}
