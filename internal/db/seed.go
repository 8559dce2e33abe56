package db

import (
	"database/sql"
	"fmt"
	"time"
)

// Seed inserts the singleton settings row, the default category list, and
// the starter materials catalog. Every statement is INSERT OR IGNORE so
// existing databases are left alone.
func Seed(db *sql.DB) error {
	if _, err := db.Exec(`INSERT OR IGNORE INTO company_settings (id, company_name) VALUES (1, 'WhitTech.AI')`); err != nil {
		return fmt.Errorf("seeding company settings: %w", err)
	}

	for _, c := range defaultCategories {
		if _, err := db.Exec(`INSERT OR IGNORE INTO categories (name, sort_order) VALUES (?, ?)`, c.name, c.sortOrder); err != nil {
			return fmt.Errorf("seeding category %q: %w", c.name, err)
		}
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM materials_catalog`).Scan(&count); err != nil {
		return fmt.Errorf("counting materials: %w", err)
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for _, m := range seedMaterials {
		if _, err := db.Exec(`INSERT INTO materials_catalog
			(category, item_name, description, unit, material_cost, typical_labor_hours, date_added, last_updated)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			m.category, m.itemName, m.description, m.unit, m.cost, m.laborHours, now, now); err != nil {
			return fmt.Errorf("seeding material %q: %w", m.itemName, err)
		}
	}
	return nil
}

var defaultCategories = []struct {
	name      string
	sortOrder int
}{
	{"Structured Cabling", 1},
	{"Access Control", 2},
	{"Video Surveillance", 3},
	{"Intrusion Detection", 4},
	{"Audio/Visual", 5},
	{"Network Infrastructure", 6},
	{"Conduit & Pathway", 7},
	{"Fiber Optics", 8},
	{"Labor", 9},
	{"General / Misc", 10},
}

var seedMaterials = []struct {
	category    string
	itemName    string
	description string
	unit        string
	cost        float64
	laborHours  float64
}{
	{"Structured Cabling", "Cat6 Cable (1000ft)", "Cat6 Plenum Rated Cable, 1000ft Box (Blue/White)", "BOX", 285.00, 2.0},
	{"Structured Cabling", "Cat6A Cable (1000ft)", "Cat6A Plenum Rated Cable, 1000ft Spool", "BOX", 380.00, 2.5},
	{"Structured Cabling", "Cat6 Keystone Jack", "Cat6 RJ45 Keystone Jack, Blue", "EA", 3.50, 0.15},
	{"Structured Cabling", "Patch Panel 24-Port", "24-Port Modular Patch Panel (Unloaded)", "EA", 45.00, 0.5},
	{"Structured Cabling", "Patch Panel 48-Port", "48-Port Modular Patch Panel (Unloaded)", "EA", 85.00, 1.0},
	{"Structured Cabling", "Faceplate 2-Port", "Single Gang 2-Port Faceplate", "EA", 1.25, 0.1},
	{"Structured Cabling", "J-Hook 2\"", "2-inch J-Hook with beam clamp", "EA", 4.50, 0.15},
	{"Structured Cabling", "Patch Cord 3ft", "Cat6 Patch Cord 3ft Blue", "EA", 3.50, 0},
	{"Conduit & Pathway", "EMT Conduit 3/4\"", "3/4\" EMT Conduit (10ft)", "EA", 12.00, 0.4},
	{"Conduit & Pathway", "EMT Conduit 1\"", "1\" EMT Conduit (10ft)", "EA", 18.00, 0.5},
	{"Conduit & Pathway", "4-Square Box", "4\" Square Deep Box", "EA", 4.50, 0.25},
	{"Conduit & Pathway", "Surface Raceway", "Wiremold 700 Series (10ft)", "EA", 35.00, 0.5},
	{"Access Control", "Card Reader", "HID Signo 40 Card Reader", "EA", 225.00, 0.75},
	{"Access Control", "Electric Strike", "HES 5000 Electric Strike", "EA", 185.00, 1.5},
	{"Access Control", "Door Contact", "Recessed Door Contact 3/4\"", "EA", 15.00, 0.5},
	{"Access Control", "Controller 4-Door", "4-Door Access Controller Board", "EA", 1200.00, 2.0},
	{"Access Control", "Power Supply", "Altronix 4-Output Power Supply", "EA", 180.00, 1.0},
	{"Video Surveillance", "IP Dome Camera", "4MP Indoor/Outdoor Dome Camera", "EA", 250.00, 1.0},
	{"Video Surveillance", "IP Bullet Camera", "8MP 4K Bullet Camera", "EA", 320.00, 1.0},
	{"Video Surveillance", "NVR 16-Ch", "16-Channel 4K NVR 4TB HDD", "EA", 850.00, 1.5},
	{"Video Surveillance", "Camera Mount", "Pendant/Wall Mount Bracket", "EA", 45.00, 0.5},
	{"Network Infrastructure", "Network Rack 42U", "2-Post 42U Open Frame Rack", "EA", 250.00, 2.0},
	{"Network Infrastructure", "PoE Switch 24-Port", "24-Port PoE+ Managed Switch", "EA", 650.00, 0.5},
	{"Network Infrastructure", "UPS 1500VA", "Rack Mount UPS 1500VA", "EA", 450.00, 0.5},
	{"Intrusion Detection", "Motion Detector", "Dual Tech Motion Detector", "EA", 45.00, 0.5},
	{"Intrusion Detection", "Keypad", "LCD Touchscreen Keypad", "EA", 220.00, 0.75},
	{"Audio/Visual", "TV Mount", "Tilting Wall Mount 55-85\"", "EA", 85.00, 1.0},
	{"Audio/Visual", "Ceiling Speaker", "6.5\" Ceiling Speaker 70V", "EA", 85.00, 0.75},
	{"Fiber Optics", "Fiber Cable OM3", "6-Strand OM3 Armored Plenum (ft)", "FT", 1.25, 0.05},
	{"Fiber Optics", "LIU Enclosure", "1U Rack Mount Fiber Enclosure", "EA", 120.00, 1.0},
	{"Fiber Optics", "LC Connector", "LC OM3 UniCam Connector", "EA", 15.00, 0.25},
	{"General / Misc", "Firestop Putty Pad", "Firestop Putty Pad 7x7", "EA", 12.00, 0.25},
	{"General / Misc", "Pull String", "Poly Pull Line (Bucket)", "EA", 45.00, 0},
	{"General / Misc", "Zip Ties (100)", "8\" Plenum Zip Ties 100pk", "PK", 12.00, 0},
}
