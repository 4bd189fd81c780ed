package gemini

// VerifierSystemInstruction frames the model as a business-conversation
// analyst. Analysis language follows the conversation language (Ukrainian).
const VerifierSystemInstruction = `Ти експерт з аналізу ділових розмов між менеджером та клієнтом. Аналізуй українською мовою. Відповідай лише структурованим JSON за наданою схемою.`

// VerifierPromptHeader precedes the formatted conversation transcript.
const VerifierPromptHeader = `Проаналізуй наступну розмову між менеджером та клієнтом.

Завдання:
1. Знайди всі обіцянки менеджера щодо термінів виконання (до кінця дня, завтра, через годину тощо).
2. Перевір, чи були ці обіцянки виконані в зазначені терміни.
3. Визнач, чи є невиконані обіцянки, та їхню кількість.
4. Підготуй короткий висновок щодо виконання обіцянок.

Розмова:
`
