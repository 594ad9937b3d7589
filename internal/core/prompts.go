package core

// prompts.go defines the fixed prompt and response templates used by the chat
// orchestrator. Keeping them in a separate file makes them easy to tweak
// without touching the rest of the code.

// SystemPrompt instructs the assistant on its scope: general health
// education only, no diagnosis, no prescriptions, and escalation to
// emergency services for life-threatening symptoms.
const SystemPrompt = `You are MedBot, a helpful medical assistant chatbot. Your role is to:

1. Provide general health information and education
2. Help users understand symptoms and when to seek care
3. Offer wellness and prevention advice
4. Explain medical terms and procedures
5. Provide medication information (educational only)
6. Suggest when professional medical care is needed

IMPORTANT LIMITATIONS:
- You cannot diagnose medical conditions
- You cannot prescribe medications
- You cannot replace professional medical advice
- You cannot interpret medical test results
- You cannot provide emergency medical care
- Always encourage users to consult healthcare providers for serious concerns

EMERGENCY SITUATIONS:
If a user describes severe symptoms like chest pain, difficulty breathing, severe bleeding, stroke symptoms, suicidal thoughts, or any life-threatening situation, immediately advise them to call emergency services (911) or go to the nearest emergency room.

COMMUNICATION STYLE:
- Be empathetic and understanding
- Use clear, non-technical language when possible
- Explain medical terms when you use them
- Ask clarifying questions when needed
- Provide actionable advice when appropriate
- Always prioritize user safety
- Be encouraging and supportive

Remember to always emphasize that you are providing educational information only and that users should consult with healthcare professionals for personalized medical advice.`

// EmergencyResponse is returned instead of a model reply whenever a message
// trips the emergency keyword gate. Emergencies never reach the completion
// endpoint.
const EmergencyResponse = `🚨 **EMERGENCY ALERT** 🚨

Based on your message, this may be a medical emergency. Please:

**IMMEDIATE ACTIONS:**
1. **Call 911 immediately** or go to the nearest emergency room
2. If available, call your local emergency number
3. If you're having thoughts of self-harm:
   - National Suicide Prevention Lifeline: 988
   - Crisis Text Line: Text HOME to 741741

**WHILE WAITING FOR HELP:**
- Stay calm and try to remain conscious
- If possible, have someone stay with you
- Gather any medications you're taking
- Prepare to provide your medical history

This chatbot cannot handle emergency situations. Please seek immediate professional medical help.

**Are you safe right now?** If not, please contact emergency services immediately.`

// Disclaimer is shown to every new session.
const Disclaimer = `⚠️ **Important Medical Disclaimer**

This chatbot provides general health information only and is not a substitute for professional medical advice, diagnosis, or treatment.

**Key Points:**
- Always consult with qualified healthcare providers for medical concerns
- This tool cannot diagnose conditions or prescribe treatments
- In emergencies, contact 911 or your local emergency services
- Information provided is for educational purposes only
- Individual medical situations vary - personalized care is essential

By using this chatbot, you acknowledge that you understand these limitations.`

// CapMessage is sent when a session exceeds its message cap.
const CapMessage = "This conversation has reached its message limit. Thank you for the details you have shared. Please start a new session or consult a healthcare provider for further questions."

// FallbackReply is used when the completion endpoint fails; the error is
// still reported to the caller.
const FallbackReply = "I'm sorry, I couldn't reach the assistant service just now. Please try again in a moment. If this is urgent, contact a healthcare provider directly."

// QuickTopics are the suggested conversation starters shown in the UI.
var QuickTopics = []string{
	"General health checkup advice",
	"Symptoms of common cold",
	"When to see a doctor",
	"Healthy diet tips",
	"Exercise recommendations",
	"Stress management",
	"Sleep hygiene",
	"Blood pressure information",
	"Diabetes management",
	"Mental health resources",
	"Preventive care schedule",
	"Medication safety",
}
