package handler

// Reply keyboard labels. The dispatcher matches on the exact label text;
// the logical action set behind the buttons is what the core depends on.
const (
	BtnWhat         = "Що це таке?"
	BtnHow          = "Як це працює?"
	BtnWalk         = "Вирушити на прогулянку"
	BtnRouteOptions = "Варіанти маршрутів"
	BtnReviews      = "Відгуки"
	BtnGuided       = "Замовити прогулянку зі мною"
	BtnSupport      = "Підтримати проєкт \"Одеса Навмання\""
	BtnBack         = "⬅ Назад"

	BtnWalk3     = "🎯 Рандом з 3 локацій"
	BtnWalk5     = "🎯 Рандом з 5 локацій"
	BtnWalk10    = "🎯 Рандом з 10 локацій"
	BtnSignature = "🌟 Фірмовий маршрут"
	BtnQuickPick = "🎲 Одна випадкова локація"

	BtnShareLocation = "📍 Поділитися геолокацією"
)
