package flow

// Button labels. Matching is by exact label, the same strings the reply
// keyboards render.
const (
	btnRegister      = "👤 Ro'yxatdan o'tish"
	btnExport        = "📊 Ma'lumotlarni yuklab olish (Admin)"
	btnSubmit        = "➕ Loyiha yuborish"
	btnSubmitAnother = "➕ Yana loyiha yuborish"
	btnEditProfile   = "✏️ Ma'lumotlarni tahrirlash"
	btnHome          = "🏠 Bosh sahifa"
	btnConfirmYes    = "✅ Ha, to'g'ri"
	btnConfirmEdit   = "✏️ Tahrirlash"
	btnBack          = "🔙 Orqaga"
	btnSendPhone     = "📱 Telefon raqamni yuborish"

	btnFieldName      = "👤 Ism"
	btnFieldAddress   = "📍 Manzil"
	btnFieldWorkplace = "🏢 Ish joyi"
	btnFieldBirthDate = "📅 Tug'ilgan sana"
	btnFieldPassport  = "🆔 Pasport"
	btnFieldPhone     = "📱 Telefon"
)

const welcomeMessage = `🌟 <b>"O'zbekiston — bag'rikeng diyor!" tanloviga xush kelibsiz!</b> 🇺🇿

Assalomu alaykum, aziz yoshlar!

Din ishlari bo'yicha qo'mita tomonidan tashkil etilgan ushbu tanlovning maqsadi — yoshlar orasida <b>millatlar va dinlararo bag'rikenglikni mustahkamlash, radikal g'oyalarga qarshi kurashish, hamda tinchlik va totuvlik g'oyalarini targ'ib qilish</b>dir.

14 yoshdan 30 yoshgacha bo'lgan barcha ijodkor yoshlar o'z iste'dodini quyidagi yo'nalishlarda namoyish etishlari mumkin:
✍️ Maqola yoki esse
🎤 She'r yoki monolog
🎶 Qo'shiq yoki musiqiy chiqish
🎨 Rassomchilik ishi
🧵 Hunarmandchilik namunasi
🎥 Video-rolik yoki kontent

Bag'rikenglik, do'stlik va birlik g'oyalarini ifodalovchi ijodingizni bizga yuboring va tanlovda ishtirok eting!

Ro'yxatdan o'tish uchun tugmani bosing 👇`

const (
	msgAdminNote = "\n\n🔐 <b>Admin panel mavjud!</b>"

	msgAlreadyRegistered = "✅ Siz allaqachon ro'yxatdan o'tgansiz!\n\nQuyidagi variantlardan birini tanlang:"

	msgAskName         = "📝 Iltimos, to'liq ismingizni kiriting:\n(Masalan: Aliyev Vali Akramovich)"
	msgAskRegion       = "📍 Viloyatingizni tanlang:"
	msgAskDistrict     = "🏘 Tumaningizni tanlang:"
	msgAskNeighborhood = "🏘 Mahalla nomini kiriting:\n(Masalan: Yangi hayot mahallasi)"
	msgAskWorkplace    = "🏢 Ish joyingizni kiriting:\n(Masalan: Toshkent davlat universiteti)"
	msgAskBirthDate    = "📅 Tug'ilgan sanangizni kiriting:\n(Masalan: 01.01.2000)"
	msgAskPassport     = "🆔 Pasport seriya va raqamingizni kiriting:\n(Masalan: AA1234567)"
	msgAskPhone        = "📱 Telefon raqamingizni yuboring:"

	msgEditName      = "📝 Yangi ismingizni kiriting:"
	msgEditWorkplace = "🏢 Yangi ish joyingizni kiriting:"
	msgEditBirthDate = "📅 Yangi tug'ilgan sanangizni kiriting (DD.MM.YYYY):"
	msgEditPassport  = "🆔 Yangi pasport ma'lumotingizni kiriting (AA1234567):"
	msgEditPhone     = "📱 Yangi telefon raqamingizni yuboring:"
	msgEditWhich     = "✏️ Qaysi ma'lumotni o'zgartirmoqchisiz?"

	msgChooseOption      = "❗️ Iltimos, tugmalardan birini tanlang!"
	msgBadDateFormat     = "❌ Noto'g'ri format! Iltimos, sanani DD.MM.YYYY formatida kiriting.\n(Masalan: 01.01.2000)"
	msgBadDate           = "❌ Noto'g'ri sana! Iltimos, mavjud sanani kiriting.\n(Masalan: 01.01.2000)"
	msgBadPassport       = "❌ Noto'g'ri format! Pasport seriyasi 2 ta harf va 7 ta raqamdan iborat bo'lishi kerak.\n(Masalan: AA1234567)"
	msgAskCategory       = "🎨 Loyiha turini tanlang:"
	msgUpdated           = "✅ Ma'lumotlaringiz muvaffaqiyatli yangilandi!"
	msgSubmissionDone    = "✅ Rahmat! Loyihangiz muvaffaqiyatli yuborildi.\n\nSizning loyihangiz ko'rib chiqiladi va natijalar keyinroq e'lon qilinadi."
	msgSubmitFailed      = "❌ Loyihani yuborishda xatolik yuz berdi. Iltimos, qaytadan urinib ko'ring."
	msgGenericError      = "❌ Xatolik yuz berdi. Iltimos, qaytadan urinib ko'ring."
	msgNotRegistered     = "❌ Siz hali ro'yxatdan o'tmagansiz. Iltimos, avval ro'yxatdan o'ting."
	msgUnexpectedContact = "❌ Kutilmagan harakat. Iltimos, /start dan boshlang."
	msgAdminOnly         = "❌ Bu funksiya faqat adminlar uchun!"
	msgExportPreparing   = "⏳ Ma'lumotlar tayyorlanmoqda, iltimos kuting..."
	msgExportFailed      = "❌ Ma'lumotlarni yuklashda xatolik yuz berdi. Iltimos, qaytadan urinib ko'ring."

	msgFileWrongState = "❌ Iltimos, avval loyiha turini tanlang.\n\n" +
		"Qadam:\n" +
		"1️⃣ \"➕ Loyiha yuborish\" tugmasini bosing\n" +
		"2️⃣ Loyiha turini tanlang\n" +
		"3️⃣ Faylni yuboring"
)
