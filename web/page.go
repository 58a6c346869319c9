package web

const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Vox</title>
    <script src="https://cdn.tailwindcss.com"></script>
</head>
<body class="bg-gray-100">
    <div class="container mx-auto px-4 py-8 max-w-5xl">
        <div class="rounded-lg bg-gradient-to-r from-indigo-500 to-purple-600 text-white text-center py-8 mb-6">
            <h1 class="text-3xl font-bold">Vox</h1>
            <p class="mt-1">Have a conversation with an AI assistant using voice or text.</p>
        </div>

        {{if .Warning}}
        <div class="bg-amber-100 border-l-4 border-amber-500 text-amber-800 p-3 rounded mb-4">
            {{.Warning}}
        </div>
        {{end}}

        <div class="grid grid-cols-1 md:grid-cols-3 gap-6">
            <div class="md:col-span-2">
                <h2 class="text-xl font-semibold mb-3">Conversation</h2>
                <div class="space-y-3">
                    {{range .Turns}}
                    {{if eq .Role "user"}}
                    <div class="bg-blue-50 border-l-4 border-blue-500 p-3 rounded">
                        <strong>You:</strong> {{.Content}}
                    </div>
                    {{else}}
                    <div class="bg-purple-50 border-l-4 border-purple-500 p-3 rounded">
                        <strong>Assistant:</strong> {{.Content}}
                        {{if .Audio}}
                        <audio controls class="mt-2 w-full" src="/audio/{{.Audio.ID}}"></audio>
                        {{end}}
                    </div>
                    {{end}}
                    {{else}}
                    <p class="text-gray-500">No messages yet. Ask something!</p>
                    {{end}}
                </div>

                <form method="post" action="/say" class="mt-6">
                    <textarea name="text" rows="3" placeholder="Type your question here..."
                        class="w-full border rounded p-2"></textarea>
                    <div class="mt-2 flex gap-2">
                        <button type="submit"
                            class="bg-indigo-600 text-white px-4 py-2 rounded">Send</button>
                        <button type="button" id="record"
                            class="bg-slate-600 text-white px-4 py-2 rounded">&#127908; Record</button>
                    </div>
                </form>
            </div>

            <div>
                <h2 class="text-xl font-semibold mb-3">Instructions</h2>
                <ol class="bg-white shadow rounded p-3 text-sm list-decimal list-inside space-y-1">
                    <li><strong>Voice Input</strong>: Click the record button and speak your question</li>
                    <li><strong>Text Input</strong>: Type your question in the text box</li>
                    <li><strong>Listen</strong>: Click the play button to hear the AI's response</li>
                    <li><strong>Clear</strong>: Use the button to start a new conversation</li>
                </ol>

                <h2 class="text-xl font-semibold mt-6 mb-3">Voice</h2>
                <form method="post" action="/voice" class="bg-white shadow rounded p-3">
                    <select name="voice" class="w-full border rounded p-2">
                        {{range .Voices}}
                        <option value="{{.ID}}" {{if eq .ID $.Voice}}selected{{end}}>{{.Name}}</option>
                        {{end}}
                    </select>
                    <button type="submit"
                        class="mt-2 w-full bg-slate-600 text-white px-3 py-1 rounded">Apply Voice</button>
                </form>

                <form method="post" action="/clear" class="mt-3">
                    <button type="submit"
                        class="w-full bg-red-500 text-white px-3 py-1 rounded">Clear Conversation</button>
                </form>

                <h2 class="text-xl font-semibold mt-6 mb-3">Sample Questions</h2>
                <ul class="bg-orange-50 border-l-4 border-orange-400 rounded p-3 text-sm list-disc list-inside">
                    <li>What should we know about your life story in a few sentences?</li>
                    <li>What's your #1 superpower?</li>
                    <li>What are the top 3 areas you'd like to grow in?</li>
                    <li>What misconception do people have about you?</li>
                    <li>How do you push your boundaries and limits?</li>
                </ul>
            </div>
        </div>
    </div>

    <script>
    // Capture mono 16kHz 16-bit PCM and post the raw samples to /listen.
    const button = document.getElementById("record");
    let recording = false;
    let stop = null;

    button.addEventListener("click", async () => {
        if (recording) {
            stop();
            return;
        }

        const stream = await navigator.mediaDevices.getUserMedia({ audio: true });
        const ctx = new AudioContext({ sampleRate: 16000 });
        const source = ctx.createMediaStreamSource(stream);
        const processor = ctx.createScriptProcessor(4096, 1, 1);
        const chunks = [];

        processor.onaudioprocess = (e) => {
            const f32 = e.inputBuffer.getChannelData(0);
            const i16 = new Int16Array(f32.length);
            for (let i = 0; i < f32.length; i++) {
                const s = Math.max(-1, Math.min(1, f32[i]));
                i16[i] = s < 0 ? s * 0x8000 : s * 0x7FFF;
            }
            chunks.push(i16);
        };

        source.connect(processor);
        processor.connect(ctx.destination);
        recording = true;
        button.textContent = "⏹ Stop";

        stop = async () => {
            processor.disconnect();
            source.disconnect();
            stream.getTracks().forEach((t) => t.stop());
            await ctx.close();
            recording = false;
            button.textContent = "🎤 Record";

            const total = chunks.reduce((n, c) => n + c.length, 0);
            const pcm = new Int16Array(total);
            let off = 0;
            for (const c of chunks) { pcm.set(c, off); off += c.length; }

            const resp = await fetch("/listen", {
                method: "POST",
                headers: { "Content-Type": "application/octet-stream" },
                body: pcm.buffer,
            });
            const body = await resp.json();
            location.href = body.warning
                ? "/?warn=" + encodeURIComponent(body.warning)
                : "/";
        };
    });
    </script>
</body>
</html>
`
