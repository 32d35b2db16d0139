package pages

import "twins-digital-web/internal/assistant"

const (
	WhatsAppURL  = assistant.WhatsAppURL
	LeadFormURL  = "https://api.leadconnectorhq.com/widget/form/iHf7I37YHEIJNvomTjhA"
	LeadFormID   = "popup-iHf7I37YHEIJNvomTjhA"
	FormEmbedJS  = "https://link.msgsndr.com/js/form_embed.js"
	InstagramURL = "https://www.instagram.com/automatizaconlostwins/"
	FacebookURL  = "https://www.facebook.com/profile.php?id=100093798041164"
	LinkedInURL  = "https://www.linkedin.com/in/orlando-miguel-pacheco-v%C3%A1squez-771051157/"
)

type navLink struct {
	Href  string
	Label string
}

var navLinks = []navLink{
	{"#problema", "Problema"},
	{"#motor", "Motor IA"},
	{"#equipo", "Equipo IA"},
	{"#servicios", "Servicios"},
	{"#demo-ia", "Probar Demo"},
	{"#portafolio", "Portafolio"},
}

type employee struct {
	Name        string
	Role        string
	Description string
	Skills      []string
	Gradient    string
	Salary      string
}

var employees = []employee{
	{
		Name:        "Twin Sales",
		Role:        "Representante de Ventas",
		Description: "Nunca duerme. Califica leads entrantes en segundos, hace seguimiento por WhatsApp y agenda citas en tu calendario automáticamente.",
		Skills:      []string{"Respuesta Instantánea 24/7", "Calificación de Leads", "Agendamiento Automático", "Seguimiento por WhatsApp"},
		Gradient:    "from-green-500 to-emerald-700",
		Salary:      "$1,200 USD",
	},
	{
		Name:        "Twin Support",
		Role:        "Agente de Soporte",
		Description: "Resuelve dudas frecuentes, gestiona reclamos y escala problemas complejos. Reduce el volumen de tickets en un 80%.",
		Skills:      []string{"Resolución de FAQs", "Triage de Tickets", "Consulta de Base de Conocimiento", "Empatía Configurable"},
		Gradient:    "from-blue-500 to-cyan-700",
		Salary:      "$900 USD",
	},
	{
		Name:        "Twin Marketing",
		Role:        "Creador de Contenido",
		Description: "Tu estratega creativo. Redacta emails, crea guiones para videos, postea en redes sociales y optimiza tus copys para conversión.",
		Skills:      []string{"Redacción SEO", "Email Marketing", "Guiones de Video", "Gestión de Redes"},
		Gradient:    "from-purple-500 to-pink-700",
		Salary:      "$1,500 USD",
	},
	{
		Name:        "Twin Ops",
		Role:        "Gerente de Operaciones",
		Description: "El cerebro administrativo. Gestiona facturas, actualiza el CRM, envía contratos y conecta todas tus herramientas.",
		Skills:      []string{"Gestión de CRM", "Emisión de Facturas", "Onboarding de Clientes", "Reportes Automáticos"},
		Gradient:    "from-orange-500 to-red-700",
		Salary:      "$1,800 USD",
	},
}

type service struct {
	Title       string
	Description string
	Tags        []string
	Gradient    string
	VideoEmbed  string
}

var services = []service{
	{"Automatización de Procesos", "Diseño y optimización de flujos automatizados para eliminar tareas repetitivas. Integramos ventas, soporte y operaciones.", []string{"n8n", "Make", "Power Automate"}, "from-cyan-400 to-blue-600", ""},
	{"Agentes IA Personalizados", "Creación de cerebros digitales entrenados con tus datos internos para analizar, ejecutar tareas y tomar decisiones complejas.", []string{"RAG", "OpenAI", "Custom Data"}, "from-purple-400 to-pink-600", ""},
	{"Bots WhatsApp 24/7", "Asistentes conversacionales que atienden, califican leads, agendan citas y procesan pagos automáticamente en WhatsApp.", []string{"WhatsApp API", "ManyChat", "Booking"}, "from-green-400 to-emerald-600", ""},
	{"Integraciones & APIs", "Conectamos plataformas que no se hablan entre sí. Migración de procesos manuales a ecosistemas conectados.", []string{"API Rest", "Webhooks", "Sync"}, "from-orange-400 to-red-500", ""},
	{"Marketing Automation", "Secuencias automáticas de email y mensajería multicanal para nutrición de leads y campañas de reactivación.", []string{"Email", "SMS", "Funnels"}, "from-yellow-400 to-orange-500", ""},
	{"Ventas & CRM", "Optimización de CRM con seguimiento automático de oportunidades. Tu equipo se enfoca en cerrar, la IA en el seguimiento.", []string{"HubSpot", "Salesforce", "Pipedrive"}, "from-blue-500 to-indigo-600", ""},
	{"Automatización Documental", "Generación, clasificación y envío automático de contratos, facturas y reportes. Cero error humano.", []string{"DocuSign", "PDF", "Drive"}, "from-gray-400 to-slate-600", ""},
	{"Consultoría Estratégica", "Diagnóstico de procesos y diseño de arquitectura de automatización. Te decimos exactamente qué y cómo automatizar.", []string{"Auditoría", "Estrategia", "Roadmap"}, "from-indigo-400 to-violet-600", ""},
	{"Workflows Complejos", "Orquestación de procesos de punta a punta con lógica avanzada, manejo de bases de datos y escalabilidad.", []string{"SQL", "Backend", "Logic"}, "from-teal-400 to-cyan-500", ""},
	{"Video Ads con IA", "Producción de videos UGC y portavoces virtuales. Guiones, edición y visuales optimizados para ventas.", []string{"HeyGen", "ElevenLabs", "Content"}, "from-rose-400 to-red-600", "https://drive.google.com/file/d/1-pS4Tm3TbRxOuPMaToP6HER9NkHA86PK/preview"},
}

type portfolioCase struct {
	Client   string
	Category string
	Problem  string
	Solution string
	Metrics  []string
	Image    string
	CTAText  string
	CTALink  string
}

var portfolio = []portfolioCase{
	{"Clínica Vitalis", "Salud", "50 llamadas perdidas al día y agenda desordenada.", "Agente IA con triage médico y agendamiento.", []string{"+150% Citas", "-40% Ausentismo"}, "https://images.unsplash.com/photo-1519494026892-80bbd2d6fd0d?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&q=80", "Ver Demo Clínica", WhatsAppURL + "?text=Hola%20Twins,%20quiero%20ver%20el%20demo%20para%20Cl%C3%ADnicas"},
	{"Restaurante El Asador", "Gastronomía", "Colapso en horas pico y errores en pedidos.", "Menú Interactivo IA integrado a cocina.", []string{"+25% Ticket Promedio", "Rotación 2x Rápida"}, "https://images.unsplash.com/photo-1517248135467-4c7edcad34c4?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&q=80", "Ver Demo Restaurante", WhatsAppURL + "?text=Hola%20Twins,%20quiero%20ver%20el%20demo%20para%20Restaurantes"},
	{"Lumina Spa", "Belleza", "Alto índice de inasistencias (No-shows).", "Agenda predictiva con cobro de seña automática.", []string{"0% No-shows", "Agenda Llena 24/7"}, "https://images.unsplash.com/photo-1600334089648-b0d9d3028eb2?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&q=80", "Ver Demo SPA", WhatsAppURL + "?text=Hola%20Twins,%20quiero%20ver%20el%20demo%20para%20SPA"},
	{"Barbería King's Cut", "Barbería", "Pérdida de citas por no contestar WhatsApp.", "Bot de reservas con catálogo de cortes.", []string{"+40% Citas Nuevas", "Fidelización VIP"}, "https://images.unsplash.com/photo-1585747860715-2ba37e788b70?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&q=80", "Ver Demo Barbería", WhatsAppURL + "?text=Hola%20Twins,%20quiero%20ver%20el%20demo%20para%20Barber%C3%ADas"},
	{"Urban Kicks", "E-com Moda", "Carritos abandonados y dudas de tallas.", "Personal Shopper IA + Recuperación Express.", []string{"+$15k Recuperados", "3x Retención"}, "https://images.unsplash.com/photo-1556906781-9a412961c28c?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&q=80", "Ver Demo Moda", WhatsAppURL + "?text=Hola%20Twins,%20quiero%20ver%20el%20demo%20para%20Tiendas%20de%20Ropa"},
	{"TechMobile Store", "E-com Tech", "Consultas repetitivas de stock y specs.", "Asesor Técnico IA conectado a inventario.", []string{"Cierre Automático", "-80% Soporte Manual"}, "https://images.unsplash.com/photo-1511707171634-5f897ff02aa9?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&q=80", "Ver Demo Tech", WhatsAppURL + "?text=Hola%20Twins,%20quiero%20ver%20el%20demo%20para%20Tiendas%20Tech"},
}

type testimonial struct {
	Quote     string
	Author    string
	Role      string
	Image     string
	Highlight string
}

var testimonials = []testimonial{
	{"Automatizalo.ai me enseñó la teoría, pero Twins me ejecutó la práctica. Resultados tangibles en 10 días. El WhatsApp directo con ellos es oro puro.", "Carlos R.", "CEO, Startup Tech", "https://randomuser.me/api/portraits/men/32.jpg", "Resultados en 10 días"},
	{"La implementación se pagó sola en el primer mes. Pasamos de usar hojas de cálculo a tener un CRM que trabaja solo. Increíble atención.", "Maria L.", "Fundadora, E-com Latam", "https://randomuser.me/api/portraits/women/44.jpg", "ROI Inmediato"},
	{"Estaba escéptico con la IA, pero el bot de agendamiento llenó mi calendario en una semana. Ya no pierdo tiempo persiguiendo clientes.", "Roberto G.", "Director Inmobiliaria", "https://randomuser.me/api/portraits/men/85.jpg", "Agenda Llena"},
}
