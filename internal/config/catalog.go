package config

import "geoping/internal/models"

// DefaultCatalog returns the built-in reference endpoints: public DNS
// resolvers spread over every inhabited continent, in catalog order.
func DefaultCatalog() []models.Target {
	targets := []models.Target{
		// North America
		{
			Name: "Google_US_E", Address: "8.8.8.8",
			Location: "Virginia/California, United States (North America)",
			Labels:   map[string]string{"ru": "Вирджиния/Калифорния, США (Северная Америка)"},
		},
		{
			Name: "OpenDNS_US_W", Address: "208.67.222.222",
			Location: "San Francisco, United States (West)",
			Labels:   map[string]string{"ru": "Сан-Франциско, США (Запад)"},
		},
		// South America
		{
			Name: "Google_BR", Address: "8.8.4.4",
			Location: "Sao Paulo, Brazil (South America)",
			Labels:   map[string]string{"ru": "Сан-Паулу, Бразилия (Южная Америка)"},
		},
		// Europe
		{
			Name: "Cloudflare_EU", Address: "1.1.1.1",
			Location: "Frankfurt/London, Germany/United Kingdom (Europe)",
			Labels:   map[string]string{"ru": "Франкфурт/Лондон, Германия/Великобритания (Европа)"},
		},
		{
			Name: "Quad9_EU", Address: "9.9.9.9",
			Location: "Zurich/Amsterdam (Europe)",
			Labels:   map[string]string{"ru": "Цюрих/Амстердам (Европа)"},
		},
		{
			Name: "Yandex_RU", Address: "77.88.8.8",
			Location: "Moscow, Russia (Eurasia)",
			Labels:   map[string]string{"ru": "Москва, Россия (Евразия)"},
		},
		// Africa
		{
			Name: "OpenDNS_ZA", Address: "196.43.46.190",
			Location: "Johannesburg, South Africa (Africa)",
			Labels:   map[string]string{"ru": "Йоханнесбург, ЮАР (Африка)"},
		},
		// East Asia
		{
			Name: "AliDNS_CN", Address: "223.5.5.5",
			Location: "Beijing/Shanghai, China (East Asia)",
			Labels:   map[string]string{"ru": "Пекин/Шанхай, Китай (Восточная Азия)"},
		},
		{
			Name: "Hinet_TW", Address: "168.95.1.1",
			Location: "Taipei, Taiwan (East Asia)",
			Labels:   map[string]string{"ru": "Тайбэй, Тайвань (Восточная Азия)"},
		},
		// Oceania
		{
			Name: "Cloudflare_AU", Address: "1.0.0.1",
			Location: "Sydney, Australia (Oceania)",
			Labels:   map[string]string{"ru": "Сидней, Австралия (Океания)"},
		},
	}
	return numbered(targets)
}

// numbered assigns each target its catalog ordinal
func numbered(targets []models.Target) []models.Target {
	for i := range targets {
		targets[i].Ordinal = i
	}
	return targets
}
