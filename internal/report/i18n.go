package report

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var supported = []language.Tag{language.English, language.Russian}

var matcher = language.NewMatcher(supported)

// Language resolves a user-supplied language name such as "ru" or "en-GB"
// to one of the supported report languages, defaulting to English
func Language(name string) language.Tag {
	_, index := language.MatchStrings(matcher, name)
	return supported[index]
}

// Message keys are the English texts; the Russian catalog follows.
const (
	msgBanner        = "🌍 Launching the PING geo-analyzer..."
	msgChecking      = "   Checking %d global targets. Sending %d packets to each target."
	msgOK            = "OK"
	msgFail          = "FAIL"
	msgTimeout       = "TIMEOUT"
	msgLatency       = "%.2f ms"
	msgLoss          = "Loss: %.1f%% (%d/%d)"
	msgLocation      = "Location: %s"
	msgDuration      = "🕒 Analysis completed in %.2f seconds."
	msgSpread        = "📊 Responded: %d of %d targets. Median RTT %.2f ms, mean %.2f ms, deviation %.2f ms."
	msgNoneResponded = "⚠️ Warning: none of the targets answered the ping. Unable to determine geographic location."
	msgEstimate      = "⭐ PING-BASED GEOGRAPHIC LOCATION ESTIMATE"
	msgClosestIntro  = "Based on network latency analysis, the point CLOSEST to you is:"
	msgTarget        = "-> TARGET: %s (%s)"
	msgClosestLoc    = "-> LOCATION: %s"
	msgAveragePing   = "-> AVERAGE PING: %.2f ms"
	msgClosestLoss   = "-> LOSS: %.1f%%"
	msgConclusion    = "✅ CONCLUSION:"
	msgSameRegion    = "Your network connection is most likely in the same region (or on the same continent) as %s. The very low latency (RTT) supports this."
	msgSameContinent = "Your latency is moderate. You are most likely on the same continent as %s, but at a considerable distance (for example, at opposite ends of Europe/Asia)."
	msgCrossDirect   = "The latency is high but stable. You are probably on a different continent from %s, but the traffic route is direct (for example, Europe -> North America)."
	msgBestGuess     = "Traffic routing is complex. The lowest latency (%.2f ms) was to the location above, which makes it the closest of the available regions."
	msgChartTitle    = "Average RTT per target"
	msgChartAxis     = "Average RTT (ms)"
)

func init() {
	ru := map[string]string{
		msgBanner:        "🌍 Запуск гео-анализатора PING...",
		msgChecking:      "   Проверяем %d глобальных целей. Отправляется %d пакета на каждую цель.",
		msgOK:            "OK",
		msgFail:          "СБОЙ",
		msgTimeout:       "TIMEOUT",
		msgLatency:       "%.2f мс",
		msgLoss:          "Потери: %.1f%% (%d/%d)",
		msgLocation:      "Локация: %s",
		msgDuration:      "🕒 Анализ завершен за %.2f секунд.",
		msgSpread:        "📊 Ответили: %d из %d целей. Медиана RTT %.2f мс, среднее %.2f мс, отклонение %.2f мс.",
		msgNoneResponded: "⚠️ Внимание: Ни одна из целей не ответила на пинг. Невозможно определить географическое местоположение.",
		msgEstimate:      "⭐ ОЦЕНКА ГЕОГРАФИЧЕСКОГО МЕСТОПОЛОЖЕНИЯ ПО PING",
		msgClosestIntro:  "На основе анализа сетевой задержки, самой БЛИЗКОЙ к Вам точкой оказалась:",
		msgTarget:        "-> ЦЕЛЬ: %s (%s)",
		msgClosestLoc:    "-> ЛОКАЦИЯ: %s",
		msgAveragePing:   "-> СРЕДНИЙ PING: %.2f мс",
		msgClosestLoss:   "-> ПОТЕРИ: %.1f%%",
		msgConclusion:    "✅ ЗАКЛЮЧЕНИЕ:",
		msgSameRegion:    "Ваше сетевое соединение, вероятно, находится в том же регионе (или на том же континенте), что и %s. Это подтверждается очень низкой задержкой (RTT).",
		msgSameContinent: "Ваша задержка умеренная. Вы, скорее всего, находитесь на том же континенте, что и %s, но на значительном расстоянии (например, в разных концах Европы/Азии).",
		msgCrossDirect:   "Задержка высокая, но стабильная. Вероятно, Вы находитесь на другом континенте относительно %s, но маршрут трафика является прямым (например, Европа -> Северная Америка).",
		msgBestGuess:     "Маршрутизация трафика сложна. Самая низкая задержка (%.2f мс) была до указанной локации, что указывает на этот регион как на наиболее близкий из доступных.",
		msgChartTitle:    "Средний RTT по целям",
		msgChartAxis:     "Средний RTT (мс)",
	}
	for key, msg := range ru {
		if err := message.SetString(language.Russian, key, msg); err != nil {
			panic(err)
		}
	}
}
